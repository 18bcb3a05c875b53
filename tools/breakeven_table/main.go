// Command breakeven_table prints the yearly buying and renting net worth of every
// buy vs rent scenario in a configuration file as CSV.
package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/finfreedom/fincalc/internal/calculation"
	"github.com/finfreedom/fincalc/internal/config"
	"github.com/finfreedom/fincalc/pkg/decimal"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: breakeven_table <config-file>")
		return
	}
	cfg, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	res, err := calc.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	fmt.Println("Scenario,Year,BuyingNetWorth,RentingNetWorth,Gap,BuyingAhead")
	for _, sc := range res.Scenarios {
		if sc.BuyVsRent == nil {
			continue
		}
		for _, y := range sc.BuyVsRent.Years {
			fmt.Printf("%q,%d,%s,%s,%s,%t\n", sc.Name, y.Year,
				decimal.NewMoney(y.BuyingNetWorth).RoundDollars().Decimal.StringFixed(0),
				decimal.NewMoney(y.RentingNetWorth).RoundDollars().Decimal.StringFixed(0),
				decimal.NewMoney(y.NetWorthGap()).RoundDollars().Decimal.StringFixed(0),
				y.NetWorthGap() > 0)
		}
		if be := sc.BuyVsRent.BreakEven; be != nil {
			fmt.Fprintf(os.Stderr, "%s: buying catches up in year %d, month %d\n", sc.Name, be.Year, be.Month)
		} else {
			fmt.Fprintf(os.Stderr, "%s: no break-even within %d years\n", sc.Name, sc.BuyVsRent.HorizonYears)
		}
	}
}
