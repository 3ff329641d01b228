// Package yaml decodes service configuration sections with
// github.com/goccy/go-yaml.
//
// Colon separated section paths are turned into YAML paths ("params" is
// "$.params", "http:tls" is "$.http.tls") and resolved with goccy's
// PathString before the section is decoded. A strict parser also rejects
// keys the target type does not declare, which catches misspelled options.
package yaml
