// Package savedobjects embeds saved-objects find in a Go program, without
// running the HTTP service.
//
// The client connects to an OpenSearch cluster holding the saved-objects
// index. Types are registered up front; each type is scoped to namespaces in
// one of three modes.
//
//	client, _ := savedobjects.New(ctx,
//	    savedobjects.WithOpenSearch("https://localhost:9200", "admin", "secret"),
//	    savedobjects.WithType("dashboard", savedobjects.Single, "title"),
//	    savedobjects.WithType("index-pattern", savedobjects.Multiple, "title"),
//	    savedobjects.WithType("data-source", savedobjects.Agnostic, "title"),
//	)
//	defer client.Close()
//
//	page, _ := client.Find(ctx, savedobjects.FindOptions{
//	    Types:      []string{"dashboard"},
//	    Namespaces: []string{"marketing"},
//	    Search:     "logs*",
//	})
//
// # Query inspection
//
// Compile returns the query document a find would send, which is useful to
// debug namespace scoping:
//
//	q, _ := client.Compile(savedobjects.FindOptions{Types: []string{"dashboard"}})
package savedobjects
