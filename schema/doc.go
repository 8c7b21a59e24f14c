// Package schema binds the language runtime to a declarative object
// model loaded from YAML.
//
// A schema file declares types, their fields, and field shapes:
//
//	types:
//	  - name: Patient
//	    root: true
//	    fields:
//	      - name: name
//	        type: HumanName
//	        repeated: true
//	      - name: gender
//	        type: code
//	        enum: [male, female, other, unknown]
//	      - name: birthDate
//	        type: date
//	  - name: HumanName
//	    fields:
//	      - name: family
//	        type: string
//	      - name: given
//	        type: string
//	        repeated: true
//
// Scalar kinds are string, code, boolean, integer, decimal, and date;
// any other field type must name another declared type. Root types are
// the ones emitted into the output bundle.
//
// [Provider] implements [lang.Provider] over a loaded [Registry],
// materializing [Element] values the interpreter navigates and
// populates. Misspelled type names, field names, and enum values are
// answered with fuzzy "did you mean" suggestions.
package schema
