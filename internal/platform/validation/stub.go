package validation

type StubValidator struct {
	ValidateStructFunc func(any) map[string]string
	ViolationsFunc     func(any) []Violation
	RegisterRuleFunc   func(tag, message string, rule Rule) error
}

var _ Validator = (*StubValidator)(nil)

func (s *StubValidator) ValidateStruct(st any) map[string]string {
	if s.ValidateStructFunc == nil {
		panic("ValidateStruct not implemented by stub")
	}
	return s.ValidateStructFunc(st)
}

func (s *StubValidator) Violations(st any) []Violation {
	if s.ViolationsFunc == nil {
		panic("Violations not implemented by stub")
	}
	return s.ViolationsFunc(st)
}

func (s *StubValidator) RegisterRule(tag, message string, rule Rule) error {
	if s.RegisterRuleFunc == nil {
		return nil
	}
	return s.RegisterRuleFunc(tag, message, rule)
}
