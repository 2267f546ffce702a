package validation

// ArrayRule validates list fields.
type ArrayRule struct {
	base[*ArrayRule]
	comparisonRules[*ArrayRule]
}

// RequiredSome requires at least one present entry.
func (r *ArrayRule) RequiredSome(message ...string) *ArrayRule {
	return r.add(presence{op: opRequiredSome, msg: msg("required_some", message)})
}

// RequiredSomeWhen applies RequiredSome only when fn reports true.
func (r *ArrayRule) RequiredSomeWhen(fn WhenFunc, message ...string) *ArrayRule {
	return r.add(presence{op: opRequiredSomeWhen, when: fn, msg: msg("required_some", message)})
}

// Length requires exactly n entries.
func (r *ArrayRule) Length(n int, message ...string) *ArrayRule {
	return r.add(count{op: opEqual, measure: TypeArray, min: float64(n), msg: msg("array.equal", message)})
}

// Equal is an alias of Length.
func (r *ArrayRule) Equal(n int, message ...string) *ArrayRule { return r.Length(n, message...) }

// BooleanRule validates yes/no fields.
type BooleanRule struct {
	base[*BooleanRule]
	decisionRules[*BooleanRule]
}

// DateRule validates date fields. Operands may be a time.Time, a date
// string or the name of another field.
type DateRule struct {
	base[*DateRule]
}

func (r *DateRule) compare(op countOp, key string, min, max any, message []string) *DateRule {
	return r.add(dates{op: op, min: min, max: max, msg: msg("date."+key, message)})
}

// Equal requires exactly the instant date resolves to.
func (r *DateRule) Equal(date any, message ...string) *DateRule {
	return r.compare(opEqual, "equal", date, nil, message)
}

// At is an alias of Equal.
func (r *DateRule) At(date any, message ...string) *DateRule { return r.Equal(date, message...) }

// Same is an alias of Equal.
func (r *DateRule) Same(date any, message ...string) *DateRule { return r.Equal(date, message...) }

// Matches is an alias of Equal.
func (r *DateRule) Matches(date any, message ...string) *DateRule { return r.Equal(date, message...) }

// After requires a date strictly later than date.
func (r *DateRule) After(date any, message ...string) *DateRule {
	return r.compare(opGt, "after", date, nil, message)
}

// AfterOrEqual requires date or later.
func (r *DateRule) AfterOrEqual(date any, message ...string) *DateRule {
	return r.compare(opGte, "after_or_equal", date, nil, message)
}

// OnOrAfter is an alias of AfterOrEqual.
func (r *DateRule) OnOrAfter(date any, message ...string) *DateRule {
	return r.AfterOrEqual(date, message...)
}

// Before requires a date strictly earlier than date.
func (r *DateRule) Before(date any, message ...string) *DateRule {
	return r.compare(opLt, "before", date, nil, message)
}

// BeforeOrEqual requires date or earlier.
func (r *DateRule) BeforeOrEqual(date any, message ...string) *DateRule {
	return r.compare(opLte, "before_or_equal", date, nil, message)
}

// OnOrBefore is an alias of BeforeOrEqual.
func (r *DateRule) OnOrBefore(date any, message ...string) *DateRule {
	return r.BeforeOrEqual(date, message...)
}

// Between is inclusive. A missing max operand field passes.
func (r *DateRule) Between(min, max any, message ...string) *DateRule {
	return r.compare(opBetween, "between", min, max, message)
}

// FileRule validates uploads by sniffed content.
type FileRule struct {
	base[*FileRule]
}

// MimeTypes restricts the detected MIME type. Aliases known to mimetype
// (e.g. image/x-png) match their canonical type.
func (r *FileRule) MimeTypes(mimes []string, message ...string) *FileRule {
	return r.add(file{op: opMimeTypes, allowed: mimes, msg: msg("file.mime_types", message)})
}

func (r *FileRule) MimeType(mime string, message ...string) *FileRule {
	return r.MimeTypes([]string{mime}, message...)
}

// Extensions restricts the extension of the detected type, with or
// without a leading dot.
func (r *FileRule) Extensions(exts []string, message ...string) *FileRule {
	return r.add(file{op: opExtensions, allowed: exts, msg: msg("file.extensions", message)})
}

func (r *FileRule) Extension(ext string, message ...string) *FileRule {
	return r.Extensions([]string{ext}, message...)
}

// Image accepts jpeg, png, bmp, gif and webp content.
func (r *FileRule) Image(message ...string) *FileRule {
	return r.add(file{op: opMimeTypes, allowed: ImageMimeTypes, msg: msg("file.image", message)})
}

// NumberRule validates numeric fields.
type NumberRule struct {
	base[*NumberRule]
	comparisonRules[*NumberRule]
	patternRules[*NumberRule]
}

// StringRule validates text fields.
type StringRule struct {
	base[*StringRule]
	decisionRules[*StringRule]
	patternRules[*StringRule]
}

func (r *StringRule) length(op countOp, key string, min, max int, message []string) *StringRule {
	return r.add(count{
		op:      op,
		measure: TypeString,
		min:     float64(min),
		max:     float64(max),
		msg:     msg("string."+key, message),
	})
}

// MinLength requires more than n characters.
func (r *StringRule) MinLength(n int, message ...string) *StringRule {
	return r.length(opGt, "min_length", n, 0, message)
}

// MaxLength requires fewer than n characters.
func (r *StringRule) MaxLength(n int, message ...string) *StringRule {
	return r.length(opLt, "max_length", n, 0, message)
}

func (r *StringRule) Length(n int, message ...string) *StringRule {
	return r.length(opEqual, "length", n, 0, message)
}

// LengthBetween is inclusive on both ends.
func (r *StringRule) LengthBetween(min, max int, message ...string) *StringRule {
	return r.length(opBetween, "length_between", min, max, message)
}

// Confirmed requires <field>_confirmation (or <field>Confirmation) to hold
// the same value.
func (r *StringRule) Confirmed(message ...string) *StringRule {
	return r.add(presence{op: opConfirmed, msg: msg("confirmed", message)})
}

func (r *StringRule) In(values []string, message ...string) *StringRule {
	return r.add(list{values: values, msg: msg("in", message)})
}

func (r *StringRule) NotIn(values []string, message ...string) *StringRule {
	return r.add(list{negate: true, values: values, msg: msg("not_in", message)})
}

func (r *StringRule) Email(message ...string) *StringRule {
	return r.add(pattern{matcher: emailPattern, msg: msg("email", message)})
}

// Username allows 3 to 20 letters, digits, dots and underscores, without a
// leading, trailing or doubled separator.
func (r *StringRule) Username(message ...string) *StringRule {
	return r.add(pattern{matcher: usernamePattern, msg: msg("username", message)})
}

func (r *StringRule) Alpha(message ...string) *StringRule {
	return r.add(pattern{matcher: alphaPattern, msg: msg("alpha", message)})
}

func (r *StringRule) AlphaDash(message ...string) *StringRule {
	return r.add(pattern{matcher: alphaDashPattern, msg: msg("alpha_dash", message)})
}

func (r *StringRule) AlphaNumeric(message ...string) *StringRule {
	return r.add(pattern{matcher: alphaNumPattern, msg: msg("alpha_num", message)})
}

// AlphaNum is an alias of AlphaNumeric.
func (r *StringRule) AlphaNum(message ...string) *StringRule { return r.AlphaNumeric(message...) }

func (r *StringRule) ASCII(message ...string) *StringRule {
	return r.add(pattern{matcher: asciiPattern, msg: msg("ascii", message)})
}

// Matches requires the value of field to be identical.
func (r *StringRule) Matches(field string, message ...string) *StringRule {
	return r.add(presence{op: opMatches, other: field, msg: msg("matches", message)})
}

func (r *StringRule) Mismatches(field string, message ...string) *StringRule {
	return r.add(presence{op: opMismatches, other: field, msg: msg("mismatches", message)})
}

// Same requires the literal text.
func (r *StringRule) Same(text string, message ...string) *StringRule {
	return r.add(presence{op: opSame, other: text, msg: msg("same", message)})
}

// Equal is an alias of Same.
func (r *StringRule) Equal(text string, message ...string) *StringRule { return r.Same(text, message...) }

func (r *StringRule) Different(text string, message ...string) *StringRule {
	return r.add(presence{op: opDifferent, other: text, msg: msg("different", message)})
}

// NotEqual is an alias of Different.
func (r *StringRule) NotEqual(text string, message ...string) *StringRule {
	return r.Different(text, message...)
}
