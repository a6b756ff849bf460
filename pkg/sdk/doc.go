// Package intentd provides an embedded Go client for the intentd
// intent-classification pipeline.
//
// The client loads a trained model bundle (vectorizer, classifier, intent
// catalog) produced by the intentd trainer and answers messages in-process,
// without running the HTTP service.
//
//	client, _ := intentd.New(ctx, intentd.WithModelDir("model"))
//	defer client.Close()
//
//	res, _ := client.Classify(ctx, "what are your branch hours")
//	fmt.Println(res.Intent, res.Confidence, res.Response)
//
// Artifacts can also be loaded from a shared Redis store, so replicas pick
// up whatever the trainer last published:
//
//	client, _ := intentd.New(ctx, intentd.WithRedis("localhost:6379", ""))
package intentd
