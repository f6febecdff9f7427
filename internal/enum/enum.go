package enum

// Values with a matching CHECK constraint in the database.

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusDone    = "DONE"
)

const (
	UserRoleOwner = "OWNER"
	UserRoleStaff = "STAFF"
)

// Labels with no database constraint.

const (
	DiscountTypePercentage = "PERCENTAGE"
	DiscountTypeFixed      = "FIXED_AMOUNT"
)

const (
	TrendingSortQuantity = "quantity"
	TrendingSortRevenue  = "revenue"
)

const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodYear  = "year"
)
