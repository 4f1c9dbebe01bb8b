// Package roll is a dice roller: !roll 2d20+1d6-2
package roll

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/keshon/simplebot/internal/bot"
	"github.com/keshon/simplebot/pkg/cmd"
)

var (
	tokenRegex = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	diceRegex  = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
	validOps   = map[string]bool{"+": true, "-": true, "*": true, "/": true}
)

var (
	ErrEmpty      = errors.New("can't parse formula")
	ErrNoOperand  = errors.New("can't multiply or divide by nothing")
	ErrDivByZero  = errors.New("can't divide by zero")
	ErrTooManyDie = errors.New("too big. max 100 dice, 1000 sides")
)

type term struct {
	value int
	desc  string
	op    string
}

// Result is an evaluated formula.
type Result struct {
	Formula     string
	Calculation string
	Total       int
}

func (r Result) String() string {
	return fmt.Sprintf("User Input: %s\nCalculation: %s\nResult: %d", r.Formula, r.Calculation, r.Total)
}

// Evaluate rolls formula with rng, or with the shared global source when rng
// is nil. Multiplication and division bind tighter than addition and
// subtraction.
func Evaluate(formula string, rng *rand.Rand) (Result, error) {
	formula = strings.ReplaceAll(formula, " ", "")
	tokens := tokenRegex.FindAllString(formula, -1)
	if len(tokens) == 0 {
		return Result{}, ErrEmpty
	}

	var terms []term
	currentOp := "+"
	for _, token := range tokens {
		if validOps[token] {
			currentOp = token
			continue
		}
		val, desc, err := evaluateToken(token, rng)
		if err != nil {
			return Result{}, fmt.Errorf("failed to evaluate %s: %w", token, err)
		}
		terms = append(terms, term{value: val, desc: desc, op: currentOp})
	}

	var merged []term
	for _, t := range terms {
		if t.op != "*" && t.op != "/" {
			merged = append(merged, t)
			continue
		}
		if len(merged) == 0 {
			return Result{}, ErrNoOperand
		}
		prev := merged[len(merged)-1]
		merged = merged[:len(merged)-1]

		val := prev.value * t.value
		if t.op == "/" {
			if t.value == 0 {
				return Result{}, ErrDivByZero
			}
			val = prev.value / t.value
		}
		merged = append(merged, term{
			value: val,
			desc:  fmt.Sprintf("%s %s %s", prev.desc, t.op, t.desc),
			op:    prev.op,
		})
	}

	total := 0
	var details []string
	for _, t := range merged {
		if len(details) > 0 {
			details = append(details, fmt.Sprintf(" %s ", t.op))
		}
		details = append(details, t.desc)
		if t.op == "-" {
			total -= t.value
		} else {
			total += t.value
		}
	}

	return Result{Formula: formula, Calculation: strings.Join(details, ""), Total: total}, nil
}

func evaluateToken(token string, rng *rand.Rand) (int, string, error) {
	matches := diceRegex.FindStringSubmatch(token)
	if matches == nil {
		num, err := strconv.Atoi(token)
		if err != nil {
			return 0, "", errors.New("not a number or dice")
		}
		return num, strconv.Itoa(num), nil
	}

	count := 1
	if matches[1] != "" {
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, "", errors.New("invalid dice count")
		}
		count = n
	}
	sides, err := strconv.Atoi(matches[2])
	if err != nil || sides < 2 {
		return 0, "", errors.New("invalid dice sides")
	}
	if count > 100 || sides > 1000 {
		return 0, "", ErrTooManyDie
	}

	var sum int
	rolls := make([]string, 0, count)
	for range count {
		r := intN(rng, sides) + 1
		sum += r
		rolls = append(rolls, strconv.Itoa(r))
	}
	return sum, fmt.Sprintf("%s [%s]", token, strings.Join(rolls, ", ")), nil
}

// intN draws from the package-level source unless rng is set. A *rand.Rand is
// not safe for concurrent use, so only tests share one.
func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

// Command answers !roll with the evaluated formula. A formula that does not
// evaluate reports failure, which brings up the command's help. Messages are
// handled concurrently, so the zero value rolls from the global source.
type Command struct {
	rng *rand.Rand
}

func New() *Command {
	return &Command{}
}

func (c *Command) Name() string        { return "roll" }
func (c *Command) Description() string { return "Roll dices like 2d20+1d6-2" }
func (c *Command) Hidden() bool        { return false }
func (c *Command) DefaultTTS() bool    { return false }

func (c *Command) Arguments() []cmd.Argument {
	return []cmd.Argument{
		{
			Name:        "formula",
			Description: "Supports 2d6+1d4*2-3 and similar math",
			Type:        cmd.String,
			Required:    true,
		},
	}
}

func (c *Command) Execute(ctx context.Context, inv *cmd.Invocation) (bool, error) {
	res, err := Evaluate(inv.Params.String("formula"), c.rng)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Msg("Roll rejected")
		return false, nil
	}
	if err := bot.Respond(ctx, inv, res.String()); err != nil {
		return false, err
	}
	return true, nil
}
