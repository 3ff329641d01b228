// Package params loads ROS 2 style parameter documents into a parameter
// tree and serves the result.
//
// The building blocks live in sub-packages: parser turns YAML into a
// tree.Tree, config describes which files and override rules to load,
// httpapi and listener serve the tree over HTTP. This package ties them
// together with a Loader and an Fx based App:
//
//	app := params.NewApp(
//	    params.WithParams(config.Params{Files: []string{"robot.yaml"}}),
//	    params.WithHTTPListener("api", listener.WithAddress(":8080")),
//	)
//	app.Run()
package params
