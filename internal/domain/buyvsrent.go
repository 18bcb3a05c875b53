package domain

// Recommendation is the outcome of a buy vs rent comparison.
type Recommendation string

const (
	RecommendBuy  Recommendation = "buy"
	RecommendRent Recommendation = "rent"
)

// BuyVsRentInputs holds the user-supplied parameters of a buy vs rent comparison.
// Currency fields are dollars; every *Percent field is percent per year.
type BuyVsRentInputs struct {
	HomePrice                  float64 `yaml:"home_price" json:"homePrice"`
	DownPaymentPercent         float64 `yaml:"down_payment_percent" json:"downPaymentPercent"`
	MortgageRatePercent        float64 `yaml:"mortgage_rate_percent" json:"mortgageRatePercent"`
	LoanTermYears              int     `yaml:"loan_term_years" json:"loanTermYears"`
	ClosingCostsBuyingPercent  float64 `yaml:"closing_costs_buying_percent" json:"closingCostsBuyingPercent"`
	ClosingCostsSellingPercent float64 `yaml:"closing_costs_selling_percent" json:"closingCostsSellingPercent"`
	PropertyTaxRatePercent     float64 `yaml:"property_tax_rate_percent" json:"propertyTaxRatePercent"`
	PMIRatePercent             float64 `yaml:"pmi_rate_percent" json:"pmiRatePercent"`
	HomeInsuranceAnnual        float64 `yaml:"home_insurance_annual" json:"homeInsuranceAnnual"`
	HOAFeesMonthly             float64 `yaml:"hoa_fees_monthly" json:"hoaFeesMonthly"`
	MaintenanceRatePercent     float64 `yaml:"maintenance_rate_percent" json:"maintenanceRatePercent"`
	MonthlyRent                float64 `yaml:"monthly_rent" json:"monthlyRent"`
	RentersInsuranceMonthly    float64 `yaml:"renters_insurance_monthly" json:"rentersInsuranceMonthly"`
	HomeAppreciationPercent    float64 `yaml:"home_appreciation_percent" json:"homeAppreciationPercent"`
	RentIncreasePercent        float64 `yaml:"rent_increase_percent" json:"rentIncreasePercent"`
	InvestmentReturnPercent    float64 `yaml:"investment_return_percent" json:"investmentReturnPercent"`
}

// DownPayment returns the cash paid up front toward the purchase price.
func (in BuyVsRentInputs) DownPayment() float64 {
	return in.HomePrice * in.DownPaymentPercent / 100
}

// LoanAmount returns the financed portion of the purchase price.
func (in BuyVsRentInputs) LoanAmount() float64 {
	return in.HomePrice - in.DownPayment()
}

// ClosingCostsBuying returns the one-time purchase closing costs.
func (in BuyVsRentInputs) ClosingCostsBuying() float64 {
	return in.HomePrice * in.ClosingCostsBuyingPercent / 100
}

// BuyVsRentYear is the state of both scenarios at the end of one projection year.
type BuyVsRentYear struct {
	Year int `json:"year"`

	// Buying
	MortgagePaid         float64 `json:"mortgagePaid"`
	PrincipalPaid        float64 `json:"principalPaid"`
	InterestPaid         float64 `json:"interestPaid"`
	PropertyTax          float64 `json:"propertyTax"`
	HomeInsurance        float64 `json:"homeInsurance"`
	Maintenance          float64 `json:"maintenance"`
	HOAFees              float64 `json:"hoaFees"`
	PMI                  float64 `json:"pmi"`
	BuyingCost           float64 `json:"buyingCost"`
	CumulativeBuyingCost float64 `json:"cumulativeBuyingCost"`
	MarketValue          float64 `json:"marketValue"`
	AssessedValue        float64 `json:"assessedValue"`
	LoanBalance          float64 `json:"loanBalance"`
	HomeEquity           float64 `json:"homeEquity"`
	BuyingNetWorth       float64 `json:"buyingNetWorth"`

	// Renting
	RentCost              float64 `json:"rentCost"`
	CumulativeRentingCost float64 `json:"cumulativeRentingCost"`
	InvestedSurplus       float64 `json:"investedSurplus"`
	InvestmentBalance     float64 `json:"investmentBalance"`
	RentingNetWorth       float64 `json:"rentingNetWorth"`
}

// NetWorthGap is buying net worth minus renting net worth for the year.
func (y BuyVsRentYear) NetWorthGap() float64 {
	return y.BuyingNetWorth - y.RentingNetWorth
}

// BreakEven locates the point at which buying net worth first catches up with renting.
type BreakEven struct {
	// Year is the 1-based projection year during which the crossover happens.
	Year int `json:"year"`
	// Fraction (0..1] of Year elapsed at the crossover, by linear interpolation.
	Fraction float64 `json:"fraction"`
	// Month (1..12) within Year.
	Month int `json:"month"`
}

// BuyVsRentResult is the outcome of a buy vs rent projection. Values are unrounded.
type BuyVsRentResult struct {
	BuyingTotalCost             float64        `json:"buyingTotalCost"`
	BuyingNetWorth              float64        `json:"buyingNetWorth"`
	RentingTotalCost            float64        `json:"rentingTotalCost"`
	RentingNetWorth             float64        `json:"rentingNetWorth"`
	BuyingMonthlyLoanPayment    float64        `json:"buyingMonthlyLoanPayment"`
	BuyingAverageMonthlyPayment float64        `json:"buyingAverageMonthlyPayment"`
	MonthlyRent                 float64        `json:"monthlyRent"`
	AverageRentPaid             float64        `json:"averageRentPaid"`
	HomeMarketValueAtHorizon    float64        `json:"homeMarketValueAtHorizon"`
	InvestmentValueIfRenting    float64        `json:"investmentValueIfRenting"`
	Recommendation              Recommendation `json:"recommendation"`
	Savings                     float64        `json:"savings"`

	HorizonYears       int             `json:"horizonYears"`
	LoanAmount         float64         `json:"loanAmount"`
	DownPayment        float64         `json:"downPayment"`
	ClosingCostsBuying float64         `json:"closingCostsBuying"`
	SellingCosts       float64         `json:"sellingCosts"`
	TotalInterestPaid  float64         `json:"totalInterestPaid"`
	TotalPMIPaid       float64         `json:"totalPmiPaid"`
	BreakEven          *BreakEven      `json:"breakEven,omitempty"`
	Years              []BuyVsRentYear `json:"years"`
}
