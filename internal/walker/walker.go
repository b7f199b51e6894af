package walker

import (
	"github.com/hsejin314/eos-zmq-plugin/internal/chain"
	"github.com/hsejin314/eos-zmq-plugin/internal/common"
	"github.com/rs/zerolog/log"
)

// extractFunc pulls the semantically relevant accounts out of one typed
// action payload.
type extractFunc func(act *chain.Action, accounts *common.Set[chain.Name]) error

// systemExtractors dispatches on the governance contract's action names.
// Actions not listed here contribute only the base account/receiver pair.
var systemExtractors = map[chain.Name]extractFunc{
	"newaccount": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.NewAccount
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Name)
		return nil
	},
	"setcode": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.SetCode
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Account)
		return nil
	},
	"setabi": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.SetABI
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Account)
		return nil
	},
	"updateauth": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.UpdateAuth
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Account)
		return nil
	},
	"deleteauth": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.DeleteAuth
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Account)
		return nil
	},
	"linkauth": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.LinkAuth
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Account)
		return nil
	},
	"unlinkauth": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.UnlinkAuth
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Account)
		return nil
	},
	"buyrambytes": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.BuyRAMBytes
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Payer)
		if data.Receiver != data.Payer {
			accounts.Add(data.Receiver)
		}
		return nil
	},
	"buyram": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.BuyRAM
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Payer)
		if data.Receiver != data.Payer {
			accounts.Add(data.Receiver)
		}
		return nil
	},
	"sellram": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.SellRAM
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Account)
		return nil
	},
	"delegatebw": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.DelegateBW
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.From)
		if data.Receiver != data.From {
			accounts.Add(data.Receiver)
		}
		return nil
	},
	"undelegatebw": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.UndelegateBW
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.From)
		if data.Receiver != data.From {
			accounts.Add(data.Receiver)
		}
		return nil
	},
	"refund": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.Refund
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Owner)
		return nil
	},
	"regproducer": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.RegProducer
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Producer)
		return nil
	},
	"bidname": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		// the bid-for account does not exist yet
		return nil
	},
	"unregprod": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.UnregProd
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Producer)
		return nil
	},
	"regproxy": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.RegProxy
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Proxy)
		return nil
	},
	"voteproducer": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.VoteProducer
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Voter)
		if data.Proxy != "" {
			accounts.Add(data.Proxy)
		}
		// the voted-for producer list is not collected
		return nil
	},
	"claimrewards": func(act *chain.Action, accounts *common.Set[chain.Name]) error {
		var data chain.ClaimRewards
		if err := act.DataAs(&data); err != nil {
			return err
		}
		accounts.Add(data.Owner)
		return nil
	},
}

// tokenActionNames is the heuristic for detecting fungible-token movement on
// contracts we have no registry for.
var tokenActionNames = map[chain.Name]struct{}{
	"transfer": {},
	"issue":    {},
	"open":     {},
}

// Walker discovers the accounts and token contracts affected by an action
// execution tree.
type Walker struct {
	blacklist map[chain.Name]map[chain.Name]struct{}
}

func NewWalker(blacklistActions map[string][]string) *Walker {
	blacklist := make(map[chain.Name]map[chain.Name]struct{}, len(blacklistActions))
	for contract, actions := range blacklistActions {
		names := make(map[chain.Name]struct{}, len(actions))
		for _, action := range actions {
			names[chain.Name(action)] = struct{}{}
		}
		blacklist[chain.Name(contract)] = names
	}
	return &Walker{blacklist: blacklist}
}

// Blacklisted reports whether the (contract, action) pair is suppressed.
func (w *Walker) Blacklisted(account, action chain.Name) bool {
	actions, ok := w.blacklist[account]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}

// Walk traverses the action trace and its inline actions, collecting affected
// accounts and token contracts. A blacklisted top-level action yields empty
// sets; its subtree is not visited.
func (w *Walker) Walk(at *chain.ActionTrace) (accounts, tokenContracts *common.Set[chain.Name]) {
	accounts = common.NewSet[chain.Name]()
	tokenContracts = common.NewSet[chain.Name]()
	if w.Blacklisted(at.Act.Account, at.Act.Name) {
		return accounts, tokenContracts
	}
	w.walk(at, accounts, tokenContracts)
	return accounts, tokenContracts
}

func (w *Walker) walk(at *chain.ActionTrace, accounts, tokenContracts *common.Set[chain.Name]) {
	accounts.Add(at.Act.Account)
	if at.Receipt.Receiver != at.Act.Account {
		accounts.Add(at.Receipt.Receiver)
	}

	if at.Act.Account == chain.SystemAccountName {
		if extract, ok := systemExtractors[at.Act.Name]; ok {
			if err := extract(&at.Act, accounts); err != nil {
				log.Warn().Err(err).
					Str("account", at.Act.Account.String()).
					Str("action", at.Act.Name.String()).
					Msg("Failed to decode system action payload")
			}
		}
	} else if _, ok := tokenActionNames[at.Act.Name]; ok {
		tokenContracts.Add(at.Act.Account)
	}

	for i := range at.InlineTraces {
		w.walk(&at.InlineTraces[i], accounts, tokenContracts)
	}
}
