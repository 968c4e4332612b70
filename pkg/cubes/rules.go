package cubes

import (
	"context"
	"fmt"

	"github.com/ib-77/trebuchet/pkg/rop/chain"
	"github.com/ib-77/trebuchet/pkg/rules"
)

const (
	PossibleRule = "possible"
	PowerRule    = "power"
)

// Possible scores a game with its id when the bag described by limits could
// have produced it, and with nothing otherwise.
func Possible(limits Limits) rules.Rule {
	return rules.New(PossibleRule, func(ctx context.Context, record string) (uint64, error) {
		game := chain.Start(ctx, Parse(ctx, record)).
			Check(func(_ context.Context, g Game) error {
				if !limits.Allows(g) {
					return fmt.Errorf("%w: game %d needs %d red, %d green, %d blue",
						rules.ErrNoValue, g.ID, g.Max[Red], g.Max[Green], g.Max[Blue])
				}
				return nil
			})
		s := chain.Finally(game, gameID, failed, failed)
		return s.value, s.err
	})
}

// Power scores a game with the product of its per-colour maxima. A product
// that overflows is an error, not an absent value.
func Power() rules.Rule {
	return rules.New(PowerRule, func(ctx context.Context, record string) (uint64, error) {
		s := chain.Finally(chain.Start(ctx, Parse(ctx, record)), gamePower, failed, failed)
		return s.value, s.err
	})
}

type score struct {
	value uint64
	err   error
}

func gameID(_ context.Context, g Game) score {
	return score{value: g.ID}
}

func gamePower(_ context.Context, g Game) score {
	p, err := g.Power()
	return score{value: p, err: err}
}

func failed(_ context.Context, err error) score {
	return score{err: err}
}
