// Command amortization_table prints a yearly principal and interest schedule.
//
//	amortization_table <principal> <annual-rate-percent> <term-years>
package main

import (
	"fmt"
	"os"
	"strconv"

	calc "github.com/finfreedom/fincalc/internal/calculation"
	"github.com/finfreedom/fincalc/pkg/decimal"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: amortization_table <principal> <annual-rate-percent> <term-years>")
		return
	}
	principal, err := strconv.ParseFloat(os.Args[1], 64)
	if err != nil {
		panic(err)
	}
	rate, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		panic(err)
	}
	term, err := strconv.Atoi(os.Args[3])
	if err != nil {
		panic(err)
	}

	fmt.Printf("Monthly payment: %s\n\n", decimal.NewMoney(calc.MonthlyPayment(principal, rate, term)).Format())
	fmt.Printf("%-5s %14s %14s %14s\n", "Year", "Principal", "Interest", "Balance")
	for _, y := range calc.Schedule(principal, rate, term) {
		fmt.Printf("%-5d %14s %14s %14s\n", y.Year,
			decimal.NewMoney(y.Principal).FormatDollars(),
			decimal.NewMoney(y.Interest).FormatDollars(),
			decimal.NewMoney(y.EndingBalance).FormatDollars())
	}
}
