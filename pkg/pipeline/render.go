package pipeline

import (
	"context"
	"fmt"

	"github.com/gregorypanta/mental-models-app/pkg/graph"
	"github.com/gregorypanta/mental-models-app/pkg/mindmap"
	"github.com/gregorypanta/mental-models-app/pkg/render"
	"github.com/gregorypanta/mental-models-app/pkg/render/nodelink"
	"github.com/gregorypanta/mental-models-app/pkg/render/radial"
)

// Render generates output artifacts in the requested formats. Options must
// already be validated. The SVG is drawn at most once and shared by the
// svg, png and pdf outputs.
func Render(ctx context.Context, g mindmap.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.MarshalGraph(g)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(g, dotOptions(opts)))
		case FormatSVG, FormatPNG, FormatPDF:
			if svg == nil {
				if svg, err = RenderSVG(ctx, g, opts); err != nil {
					return nil, fmt.Errorf("render svg: %w", err)
				}
			}
			switch format {
			case FormatSVG:
				data = svg
			case FormatPNG:
				data, err = render.ToPNG(ctx, svg, opts.Scale)
			default:
				data, err = render.ToPDF(ctx, svg)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderSVG draws g with the configured renderer.
func RenderSVG(ctx context.Context, g mindmap.Graph, opts Options) ([]byte, error) {
	if opts.Renderer == RendererGraphviz {
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, dotOptions(opts)))
	}
	return radial.RenderSVG(g, svgOptions(opts)...), nil
}

func svgOptions(opts Options) []radial.SVGOption {
	var svgOpts []radial.SVGOption
	if opts.Links || opts.NavBaseURL != "" {
		svgOpts = append(svgOpts, radial.WithLinks(opts.NavBaseURL))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, radial.WithInteraction())
	}
	return svgOpts
}

func dotOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed}
}
