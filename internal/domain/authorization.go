package domain

// Authorization gates privileged commands. It is built once from configuration.
type Authorization struct {
	Enabled   bool
	allowList map[string]struct{}
}

func NewAuthorization(enabled bool, allowList []string) Authorization {
	set := make(map[string]struct{}, len(allowList))
	for _, sender := range allowList {
		set[sender] = struct{}{}
	}
	return Authorization{Enabled: enabled, allowList: set}
}

// Allows reports whether sender may run privileged commands. With enforcement
// disabled everyone is allowed.
func (a Authorization) Allows(sender string) bool {
	if !a.Enabled {
		return true
	}
	_, ok := a.allowList[sender]
	return ok
}

func (a Authorization) Size() int {
	return len(a.allowList)
}
