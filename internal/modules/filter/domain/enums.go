//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// NGMode selects which ng tier an operator command works on
// ENUM(hidden,monitor)
type NGMode string
