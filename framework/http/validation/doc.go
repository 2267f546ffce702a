// Package validation provides a fluent, Laravel-inspired validator for
// submitted form data.
//
// # Overview
//
// Each field is declared with a typed builder. The builder seeds an implicit
// type check and appends one predicate per chained call. A Validator runs
// every field's predicates in order and collects the failures in an Errors
// bag that serialises like Laravel's MessageBag.
//
// # Basic Usage
//
//	form := validation.NewForm().
//	    Add("email", "alice@example.com").
//	    Add("password", "hunter22").
//	    Add("password_confirmation", "hunter22").
//	    Add("tags[]", "go").Add("tags[]", "")
//
//	v := validation.Make(form, validation.Rules{
//	    "email":    validation.String().Required().Email(),
//	    "password": validation.String().Required().MinLength(7).Confirmed().Bail(),
//	    "tags.*":   validation.String().Required(),
//	    "age":      validation.Number().Between(18, 99),
//	})
//
//	bag, err := v.Validate(ctx)
//	if err != nil {
//	    // a predicate could not run (I/O, cancelled context, strict mode)
//	}
//	if bag.Any() {
//	    // JSON: {"errors": {"tags[]": ["The tags[1] field is required"]}}
//	}
//
// # Field Names
//
//   - "name" reads the first value of name.
//   - "name[]" reads every value of name[] as a []any.
//   - "name.*" runs the rules against each value of name[] separately. The
//     attribute of entry i is "name[i]" and messages are stored under
//     "name[]". Wildcard fields never bail.
//
// # Failures
//
// A type failure (for example "abc" on a Number field) records the type
// message and skips the rest of the field's rules. Other failures are all
// recorded unless Bail is set, in which case only the first is.
//
// Rules whose own operands are invalid, such as Between(10, 1) or a date
// comparison against a field holding "yesterday", record a distinct
// message and log a warning. With the Strict option they make Validate
// return an error wrapping ErrMisconfigured instead.
//
// # Messages
//
// Templates use the tokens :attribute, :$1, :$2, :array and :type. Every
// chain method accepts an optional custom template. Defaults come from a
// Catalog, which may load per-language YAML overrides:
//
//	nl:
//	  required: "Het veld :attribute is verplicht"
//
// # Rule Strings
//
// Rules may also be written in pipe syntax and compiled with Parse, or kept
// in a YAML RuleFile:
//
//	validation.ParseRules(map[string]string{
//	    "email": "required|email",
//	    "age":   "number|required|gte:18",
//	    "tags[]": "array|required_some|max:5",
//	})
package validation
