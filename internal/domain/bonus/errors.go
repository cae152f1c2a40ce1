package bonus

import "errors"

var (
	ErrBonusRuleNotFound   = errors.New("bonus rule not found")
	ErrBonusRuleNameExists = errors.New("bonus rule name already exists")
)
