package mindmap

import "strconv"

// RootID is the id of the single root node.
const RootID = "center"

// SectionID returns the node id of a section.
func SectionID(slug string) string {
	return "section-" + slug
}

// ModelID returns the node id of a model.
func ModelID(sectionSlug string, modelIndex int) string {
	return "model-" + sectionSlug + "-" + strconv.Itoa(modelIndex)
}

// EdgeID returns the id of the edge between two node ids.
func EdgeID(source, target string) string {
	return "e-" + source + "-" + target
}
