package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
// Install it with COMP_INSTALL=1 pts.
func Completion() *complete.Command {
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"stocks": {
				Flags: map[string]complete.Predictor{
					"q":     predict.Nothing,
					"jsonl": predict.Nothing,
				},
			},
			"session": {
				Flags: map[string]complete.Predictor{
					"script": predict.Files("*"),
				},
			},
			"trades": {
				Args: predict.Files("*.jsonl"),
			},
			"help":     {Args: predict.Set{"stocks", "session", "trades"}},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"catalog-file":    predict.Files("*.jsonl"),
			"currency":        predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
			"initial-balance": predict.Nothing,
			"bcrypt-cost":     predict.Nothing,
			"plain":           predict.Nothing,
		},
	}
}
