package valueobject

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places kept for monetary amounts.
const MoneyScale int32 = 4

// QuantityScale is the number of decimal places kept for quantities.
const QuantityScale int32 = 3

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds d to MoneyScale places, halves away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// RoundQuantity rounds q to QuantityScale places, halves away from zero.
func RoundQuantity(q decimal.Decimal) decimal.Decimal {
	return q.Round(QuantityScale)
}

// Sum adds amounts exactly and rounds the result to MoneyScale.
// An empty argument list yields zero.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return RoundMoney(total)
}

// MultiplyByQuantity returns price × qty rounded to MoneyScale.
func MultiplyByQuantity(price, qty decimal.Decimal) decimal.Decimal {
	return RoundMoney(price.Mul(qty))
}

// PercentOf returns amount × rate / 100. The division is carried out at
// MoneyScale, rounding halves away from zero.
func PercentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(rate).DivRound(hundred, MoneyScale))
}
