package entity

import "time"

// ApprovalRuleCriteria is one matching condition of an approval rule
type ApprovalRuleCriteria struct {
	Dimension string `json:"dimension"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
	Value2    string `json:"value2,omitempty"`
}

// ApprovalRuleLevel configures the roles and quorum of one approval level
type ApprovalRuleLevel struct {
	Level             int      `json:"level"`
	Roles             []string `json:"roles"`
	RequiredApprovals int      `json:"requiredApprovals"`
	Description       string   `json:"description"`
}

// ApprovalRule decides which levels a deal must pass
type ApprovalRule struct {
	ID        string                 `json:"id,omitempty"`
	RuleName  string                 `json:"ruleName" binding:"required"`
	Priority  int                    `json:"priority"`
	Active    bool                   `json:"active"`
	Criteria  []ApprovalRuleCriteria `json:"criteria"`
	Levels    []ApprovalRuleLevel    `json:"levels" binding:"required,min=1"`
	CreatedAt *time.Time             `json:"createdAt,omitempty"`
	UpdatedAt *time.Time             `json:"updatedAt,omitempty"`
}

// PricingRuleDimensions selects the invoices a pricing rule applies to
type PricingRuleDimensions struct {
	Currency     string  `json:"currency"`
	MinAmount    float64 `json:"minAmount"`
	MaxAmount    float64 `json:"maxAmount"`
	MinTenorDays int     `json:"minTenorDays"`
	MaxTenorDays int     `json:"maxTenorDays"`
}

// PricingRuleRates are expressed in basis points
type PricingRuleRates struct {
	DefaultRateBps int `json:"defaultRateBps"`
	MinRateBps     int `json:"minRateBps"`
	MaxRateBps     int `json:"maxRateBps"`
}

// Fee type constants
const (
	FeeTypeBps  = "BPS"
	FeeTypeFlat = "FLAT"
)

// PricingRuleFees describes the transaction fee of a pricing rule
type PricingRuleFees struct {
	FeeType       string  `json:"feeType" binding:"oneof=BPS FLAT"`
	FeeRateBps    int     `json:"feeRateBps"`
	FeeFlatAmount float64 `json:"feeFlatAmount"`
}

// PricingRule computes the default discount terms for matching invoices
type PricingRule struct {
	ID            string                `json:"id,omitempty"`
	Name          string                `json:"name" binding:"required"`
	Enabled       bool                  `json:"enabled"`
	Priority      int                   `json:"priority"`
	Dimensions    PricingRuleDimensions `json:"dimensions"`
	Rates         PricingRuleRates      `json:"rates"`
	Fees          PricingRuleFees       `json:"fees"`
	EffectiveFrom *string               `json:"effectiveFrom,omitempty"`
	EffectiveTo   *string               `json:"effectiveTo,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
}

// SystemPermission is a named capability that roles can grant
type SystemPermission struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// SystemRole maps a bank role to a set of permissions
type SystemRole struct {
	ID          string   `json:"id,omitempty"`
	BankRole    string   `json:"bankRole" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}
