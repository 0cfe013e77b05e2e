package keyseq

import "errors"

// ErrInvalidKeyExpression is returned by ParseExpr and Registry.Define when
// a key expression is malformed: unmatched `>`, `` ` ``, `(` or `)`, an
// empty choice alternative, a reference to an undefined macro, or a `?`
// with nothing to make optional.
var ErrInvalidKeyExpression = errors.New("keyseq: invalid key expression")
