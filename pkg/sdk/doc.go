// Package reviewdex embeds the reviewdex product catalogue, review store and
// sentiment classifier in a Go program without running the HTTP server.
//
// The client loads the trained vectorizer and classifier from disk, then
// connects to Redis with the JSON and search modules:
//
//	client, err := reviewdex.New(ctx,
//	    reviewdex.WithRedis("localhost:6379"),
//	    reviewdex.WithArtifacts("model"),
//	)
//	defer client.Close()
//
//	p, _ := client.Products().Create(ctx, reviewdex.NewProduct{
//	    Name: "Kettle", Price: 29.9, Description: "1.7l steel kettle", Stock: 12,
//	})
//	r, _ := client.Reviews().Create(ctx, p.ID, "simple and convenient", "")
//	fmt.Println(r.Sentiment) // positive
//
// Sentiment can also be computed without storing anything:
//
//	label, _ := client.Analyze(ctx, "awful, broke in a week")
package reviewdex
