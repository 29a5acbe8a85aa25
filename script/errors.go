package script

import "errors"

var SYNTAX_ERROR = errors.New("Syntax error")
var UNKNOWN_COMMAND_ERROR = errors.New("Unknown command")
