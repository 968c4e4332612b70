package cubes

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ib-77/trebuchet/pkg/rop"
	"github.com/ib-77/trebuchet/pkg/rop/chain"
	"github.com/ib-77/trebuchet/pkg/rules"
)

var (
	// ErrMalformed is returned for a record that is not a game.
	ErrMalformed = errors.New("malformed game")
	// ErrOverflow is returned when a cube count or a power does not fit in
	// 64 bits.
	ErrOverflow = errors.New("value overflows uint64")
)

type Colour int

const (
	Red Colour = iota
	Green
	Blue
)

func (c Colour) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Colour(%d)", int(c))
	}
}

func ParseColour(text string) (Colour, error) {
	switch text {
	case "red":
		return Red, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	default:
		return 0, fmt.Errorf("%w: undefined colour %q", ErrMalformed, text)
	}
}

// Draw is a number of cubes of one colour.
type Draw struct {
	Count  uint64
	Colour Colour
}

// Set is one handful of cubes shown during a game.
type Set []Draw

// Count sums the cubes of colour c in the set.
func (s Set) Count(c Colour) uint64 {
	var n uint64
	for _, d := range s {
		if d.Colour == c {
			n += d.Count
		}
	}
	return n
}

type Game struct {
	ID   uint64
	Sets []Set
	// Max holds the largest per-set count of each colour, indexed by Colour.
	Max [3]uint64
}

// Power is the product of the per-colour maxima.
func (g Game) Power() (uint64, error) {
	hi, rg := bits.Mul64(g.Max[Red], g.Max[Green])
	if hi != 0 {
		return 0, fmt.Errorf("game %d: power: %w", g.ID, ErrOverflow)
	}
	hi, p := bits.Mul64(rg, g.Max[Blue])
	if hi != 0 {
		return 0, fmt.Errorf("game %d: power: %w", g.ID, ErrOverflow)
	}
	return p, nil
}

func (g Game) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game %d:", g.ID)
	for i, s := range g.Sets {
		if i > 0 {
			b.WriteByte(';')
		}
		for j, d := range s {
			if j > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, " %d %s", d.Count, d.Colour)
		}
	}
	return b.String()
}

// Limits is the content of the bag: how many cubes of each colour exist.
type Limits struct {
	Red   uint64
	Green uint64
	Blue  uint64
}

// Allows reports whether every set of g fits in the bag.
func (l Limits) Allows(g Game) bool {
	return g.Max[Red] <= l.Red && g.Max[Green] <= l.Green && g.Max[Blue] <= l.Blue
}

type header struct {
	id   uint64
	body string
}

// Parse reads one game record. Malformed records end on the failure track
// with an error wrapping both ErrMalformed and rules.ErrNoValue.
func Parse(ctx context.Context, line string) rop.Result[Game] {
	game := chain.Map(
		chain.ThenTry(
			chain.ThenTry(chain.FromValue(ctx, line), parseHeader),
			parseBody),
		withMaxima).
		Ensure(func(ctx context.Context, g Game) {
			zerolog.Ctx(ctx).Trace().Stringer("game", g).Msg("game parsed")
		})
	return game.Result()
}

func parseHeader(_ context.Context, line string) (header, error) {
	name, body, found := strings.Cut(line, ":")
	if !found {
		return header{}, malformed("missing ':' in %q", line)
	}

	fields := strings.Split(name, " ")
	id, err := strconv.ParseUint(fields[len(fields)-1], 10, 64)
	if err != nil {
		return header{}, malformed("game id: %v", err)
	}
	return header{id: id, body: body}, nil
}

func parseBody(_ context.Context, h header) (Game, error) {
	game := Game{ID: h.id}
	for _, text := range strings.Split(h.body, ";") {
		set, err := parseSet(text)
		if err != nil {
			return Game{}, fmt.Errorf("game %d: %w", h.id, err)
		}
		game.Sets = append(game.Sets, set)
	}
	return game, nil
}

func parseSet(text string) (Set, error) {
	var set Set
	var totals [3]uint64
	for _, cube := range strings.Split(text, ",") {
		count, colour, _ := strings.Cut(strings.TrimSpace(cube), " ")
		n, err := strconv.ParseUint(count, 10, 64)
		if err != nil {
			return nil, malformed("cube count: %v", err)
		}
		c, err := ParseColour(colour)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", rules.ErrNoValue, err)
		}
		sum, carry := bits.Add64(totals[c], n, 0)
		if carry != 0 {
			return nil, fmt.Errorf("%s cubes in one set: %w", c, ErrOverflow)
		}
		totals[c] = sum
		set = append(set, Draw{Count: n, Colour: c})
	}
	return set, nil
}

func withMaxima(_ context.Context, g Game) Game {
	for _, s := range g.Sets {
		for _, c := range []Colour{Red, Green, Blue} {
			g.Max[c] = max(g.Max[c], s.Count(c))
		}
	}
	return g
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", rules.ErrNoValue, ErrMalformed, fmt.Sprintf(format, args...))
}
