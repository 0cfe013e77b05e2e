package excmd

import "errors"

// ErrUnknownCommand is returned by Dispatch when no registered name or
// disambiguating prefix matches.
var ErrUnknownCommand = errors.New("excmd: not an editor command")

// ErrTrailingCharacters is returned by the built-in quit command when it
// is invoked with any arguments.
var ErrTrailingCharacters = errors.New("excmd: trailing characters")
