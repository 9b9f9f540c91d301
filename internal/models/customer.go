package models

import (
	"strconv"
	"strings"
)

// CustomerColumns are the columns every customer file must carry.
var CustomerColumns = []string{
	"customer_id", "age", "gender", "income", "member_since", "satisfaction_score", "purchase_frequency",
}

// CleanedCustomerColumns are the columns of a cleaned customers file.
var CleanedCustomerColumns = append(append([]string(nil), CustomerColumns...), "membership_days")

// Customer is one customer record. MembershipDays is derived during cleaning.
// The validate tags describe a plausible record; violations are reported, not dropped.
type Customer struct {
	CustomerID        string  `csv:"customer_id" json:"customer_id" yaml:"customer_id" validate:"required"`
	Age               int     `csv:"age" json:"age" yaml:"age" validate:"gte=18,lte=100"`
	Gender            string  `csv:"gender" json:"gender" yaml:"gender" validate:"required"`
	Income            float64 `csv:"income" json:"income" yaml:"income" validate:"gte=0"`
	MemberSince       Date    `csv:"member_since" json:"member_since" yaml:"member_since"`
	SatisfactionScore float64 `csv:"satisfaction_score" json:"satisfaction_score" yaml:"satisfaction_score" validate:"gte=1,lte=5"`
	PurchaseFrequency int     `csv:"purchase_frequency" json:"purchase_frequency" yaml:"purchase_frequency" validate:"gte=0"`
	MembershipDays    int     `csv:"membership_days" json:"membership_days" yaml:"membership_days"`
}

// Key identifies a row by its source columns.
func (c Customer) Key() string {
	return strings.Join([]string{
		c.CustomerID,
		strconv.Itoa(c.Age),
		c.Gender,
		strconv.FormatFloat(c.Income, 'g', -1, 64),
		c.MemberSince.String(),
		strconv.FormatFloat(c.SatisfactionScore, 'g', -1, 64),
		strconv.Itoa(c.PurchaseFrequency),
	}, "\x1f")
}

// AgeGroup is a customer age bucket.
type AgeGroup string

const (
	AgeUnder30   AgeGroup = "<30"
	Age30To40    AgeGroup = "30-40"
	Age40To50    AgeGroup = "40-50"
	Age50AndOver AgeGroup = "50+"
)

// AgeGroups lists the buckets in ascending order.
var AgeGroups = []AgeGroup{AgeUnder30, Age30To40, Age40To50, Age50AndOver}

// AgeGroupOf buckets age into right-closed bins (0,30], (30,40], (40,50] and
// (50,100]. Ages outside (0,100] belong to no group and ok is false.
func AgeGroupOf(age int) (group AgeGroup, ok bool) {
	switch {
	case age <= 0 || age > 100:
		return "", false
	case age <= 30:
		return AgeUnder30, true
	case age <= 40:
		return Age30To40, true
	case age <= 50:
		return Age40To50, true
	default:
		return Age50AndOver, true
	}
}
