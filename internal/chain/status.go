package chain

import (
	"encoding/json"
	"fmt"
)

// TransactionStatus is the receipt status assigned by the engine.
type TransactionStatus uint8

const (
	StatusExecuted TransactionStatus = iota
	StatusSoftFail
	StatusHardFail
	StatusDelayed
	StatusExpired
)

var statusNames = map[TransactionStatus]string{
	StatusExecuted: "executed",
	StatusSoftFail: "soft_fail",
	StatusHardFail: "hard_fail",
	StatusDelayed:  "delayed",
	StatusExpired:  "expired",
}

func (s TransactionStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		for status, n := range statusNames {
			if n == name {
				*s = status
				return nil
			}
		}
		return fmt.Errorf("unknown transaction status %q", name)
	}
	var raw uint8
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("transaction status is neither a name nor an integer")
	}
	*s = TransactionStatus(raw)
	return nil
}
