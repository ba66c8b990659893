// Package placematch finds loop-closure candidates in a hierarchical scene graph.
//
// Every node of the graph owns a descriptor summarizing what was observed
// at it. Recognizing that two descriptors describe the same real-world place
// is done in two stages:
//
//  1. A single-layer search scores the query's aggregate descriptor against
//     the cached descriptors of other roots and keeps every root scoring
//     above a threshold.
//  2. A leaf search scores the query's fine descriptor against the leaf
//     descriptors of the accepted roots and keeps the single best leaf.
//
// The stateless search functions live in package lcd; Matcher wraps them
// with validation, structured logging and metrics.
//
// # Quick Start
//
//	m, _ := placematch.New(
//		placematch.WithCoarseConfig(lcd.MatchConfig{MinScore: 0.8}),
//		placematch.WithFineConfig(lcd.MatchConfig{MinScore: 0.9}),
//	)
//
//	det, err := m.Detect(ctx, placematch.DetectRequest{
//		CoarseQuery: placeDescriptor,
//		FineQuery:   objectDescriptor,
//		Candidates:  candidates,
//		CoarseCache: places,
//		RootLeafMap: placeObjects,
//		FineCaches:  objectsByPlace,
//	})
//	if err == nil && det.Found {
//		fmt.Println(det.QueryRoot, "->", det.MatchNode)
//	}
//
// # Descriptors
//
// Descriptors are immutable and created with descriptor.New. Dense
// descriptors are compared index by index; sparse (bag-of-words) descriptors
// carry word ids and are compared over the union of their words:
//
//	d, err := descriptor.New([]float32{0.2, 0.7},
//		descriptor.WithWords(17, 42),
//		descriptor.WithRoot(5),
//		descriptor.WithTimestamp(stamp),
//	)
//
// # Configuration
//
// Match parameters can be loaded from YAML with package config:
//
//	file, err := config.Load("placematch.yaml")
//	m, err := placematch.New(file.Options()...)
package placematch
