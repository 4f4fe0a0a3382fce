package integrations_test

import (
	"fmt"
	"net/url"

	"github.com/gregorypanta/mental-models-app/pkg/integrations"
)

func ExampleJoinURL() {
	fmt.Println(integrations.JoinURL("https://api.example.com/api/", "models", "decision-making", "0"))
	// Output:
	// https://api.example.com/api/models/decision-making/0
}

func ExampleWithQuery() {
	u := integrations.WithQuery("https://api.example.com/api/models", url.Values{
		"limit":   {"300"},
		"section": {"thinking"},
	})
	fmt.Println(u)
	// Output:
	// https://api.example.com/api/models?limit=300&section=thinking
}

func Example_errors() {
	fmt.Println("ErrNotFound:", integrations.ErrNotFound)
	fmt.Println("ErrNetwork:", integrations.ErrNetwork)
	// Output:
	// ErrNotFound: not found
	// ErrNetwork: network error
}
