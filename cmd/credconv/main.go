// Command credconv converts a credentials.json service-account key file into
// the [gcp_service_account] TOML block the hosted secrets store expects.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

func main() {
	path := "credentials.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	var creds map[string]interface{}
	if err := json.Unmarshal(raw, &creds); err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}

	keys := make([]string, 0, len(creds))
	for key := range creds {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Println("\n=== TOML block for the hosted secrets store ===")
	fmt.Println()
	fmt.Println("[gcp_service_account]")
	for _, key := range keys {
		switch value := creds[key].(type) {
		case string:
			escaped := strings.ReplaceAll(value, `\`, `\\`)
			escaped = strings.ReplaceAll(escaped, `"`, `\"`)
			escaped = strings.ReplaceAll(escaped, "\n", `\n`)
			fmt.Printf("%s = \"%s\"\n", key, escaped)
		default:
			fmt.Printf("%s = %v\n", key, value)
		}
	}
	fmt.Println()
	fmt.Println("=== Copy the above into your deployment secrets ===")
}
