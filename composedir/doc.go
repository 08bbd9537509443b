// Package composedir builds all the documents of a build directory.
//
// A build directory holds a manifest (build.yaml or build.json) under
// a top-level "build" key:
//
//	build:
//	  destDir: out
//	  format: yaml
//	  env:
//	    region: us
//	  sources:
//	    - file: config.xml
//	    - dir: services
//	  overlays:
//	    - when: region == "us"
//	      match: {name: web}
//	      merge: {replicas: 3}
//
// Sources compose through the compose package; overlays gate on env
// expressions and merge fragments into matching documents; results
// write to destDir (one file per document) or stream to a writer.
// STRUCTML_BUILD_ENV=KEY=VAL,... overrides manifest env entries.
package composedir
