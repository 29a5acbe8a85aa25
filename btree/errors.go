package btree

import "errors"

var INVALID_ORDER_ERROR = errors.New("Invalid order. The minimum degree must be at least 2")
var ALLOCATION_ERROR = errors.New("Node allocation failed")
var INVARIANT_ERROR = errors.New("B-tree invariant violated")
