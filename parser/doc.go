// Package parser builds a tree.Tree from YAML parameter documents.
//
// A document is a mapping whose keys, nested one mapping per segment, spell
// a node name; the reserved key "ros__parameters" ends the node name and
// opens the node's parameters. Keys under it are parameter names, and
// nested mappings qualify them with "." until a scalar or a sequence of
// scalars holds the value:
//
//	robot:
//	  arm:
//	    ros__parameters:
//	      gains:
//	        p: 1.5
//	      joints: [shoulder, elbow]
//
// yields node "robot/arm" with parameters "gains.p" = 1.5 and
// "joints" = ["shoulder", "elbow"].
//
// The engine consumes a stream of YAML events (see EventSource) one at a
// time; it is synchronous and not safe for concurrent use on the same tree.
// ParseValue and ParseOverride reuse the value half of the engine to set a
// single parameter from a literal YAML value, as command line overrides do.
//
// On failure the tree keeps whatever was parsed before the error and is
// still safe to Finalize. The message of the most recent failure is also
// available from LastError.
package parser
