// Package config loads the service configuration of the parameter server.
//
// A configuration file is a YAML document with one section per concern:
//
//	log:
//	  level: debug
//	params:
//	  files: [robot.yaml, site.yaml]
//	  overrides: ["arm:gains.p:=2.0"]
//	  node_capacity: 16
//	http:
//	  address: ":8080"
//
// Sections are read through four extension points: a Parser that decodes a
// section selected by a colon separated path ("params", "http"), a
// DataFetcher that supplies the raw bytes, and the optional Defaulter and
// Validator implemented by the section types. Provider ties them together
// and is shaped as an Fx constructor:
//
//	provide := config.Provider(new(config.Params), config.ParamsPath)
//	params, err := provide(yamlparser.NewParser(), fetcher)
//
// OptionalProvider does the same for sections that may be left out, in which
// case the section gets its defaults.
package config
