package chain

import "encoding/json"

// Typed payloads of the governance contract's actions, used by the walker to
// extract the accounts an action affects.

type NewAccount struct {
	Creator Name            `json:"creator"`
	Name    Name            `json:"name"`
	Owner   json.RawMessage `json:"owner,omitempty"`
	Active  json.RawMessage `json:"active,omitempty"`
}

type SetCode struct {
	Account Name   `json:"account"`
	VMType  uint8  `json:"vmtype"`
	Code    string `json:"code,omitempty"`
}

type SetABI struct {
	Account Name   `json:"account"`
	ABI     string `json:"abi,omitempty"`
}

type UpdateAuth struct {
	Account    Name            `json:"account"`
	Permission Name            `json:"permission"`
	Parent     Name            `json:"parent"`
	Auth       json.RawMessage `json:"auth,omitempty"`
}

type DeleteAuth struct {
	Account    Name `json:"account"`
	Permission Name `json:"permission"`
}

type LinkAuth struct {
	Account     Name `json:"account"`
	Code        Name `json:"code"`
	Type        Name `json:"type"`
	Requirement Name `json:"requirement"`
}

type UnlinkAuth struct {
	Account Name `json:"account"`
	Code    Name `json:"code"`
	Type    Name `json:"type"`
}

type BuyRAMBytes struct {
	Payer    Name   `json:"payer"`
	Receiver Name   `json:"receiver"`
	Bytes    uint32 `json:"bytes"`
}

type BuyRAM struct {
	Payer    Name  `json:"payer"`
	Receiver Name  `json:"receiver"`
	Quant    Asset `json:"quant"`
}

type SellRAM struct {
	Account Name   `json:"account"`
	Bytes   uint64 `json:"bytes"`
}

type DelegateBW struct {
	From             Name  `json:"from"`
	Receiver         Name  `json:"receiver"`
	StakeNetQuantity Asset `json:"stake_net_quantity"`
	StakeCPUQuantity Asset `json:"stake_cpu_quantity"`
	Transfer         bool  `json:"transfer"`
}

type UndelegateBW struct {
	From               Name  `json:"from"`
	Receiver           Name  `json:"receiver"`
	UnstakeNetQuantity Asset `json:"unstake_net_quantity"`
	UnstakeCPUQuantity Asset `json:"unstake_cpu_quantity"`
}

type Refund struct {
	Owner Name `json:"owner"`
}

type RegProducer struct {
	Producer    Name   `json:"producer"`
	ProducerKey string `json:"producer_key"`
	URL         string `json:"url"`
	Location    uint16 `json:"location"`
}

type UnregProd struct {
	Producer Name `json:"producer"`
}

type RegProxy struct {
	Proxy   Name `json:"proxy"`
	IsProxy bool `json:"isproxy"`
}

type VoteProducer struct {
	Voter     Name   `json:"voter"`
	Proxy     Name   `json:"proxy"`
	Producers []Name `json:"producers"`
}

type ClaimRewards struct {
	Owner Name `json:"owner"`
}

type Transfer struct {
	From     Name   `json:"from"`
	To       Name   `json:"to"`
	Quantity Asset  `json:"quantity"`
	Memo     string `json:"memo"`
}
