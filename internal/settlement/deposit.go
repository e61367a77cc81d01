package settlement

// SettleDeposit clamps the tenant's damage liability against the deposit
// held at lease start. Retention never exceeds the deposit and refund is
// whatever remains; both are always non-negative. A zero deposit (e.g. a
// mobility lease) yields zero retention and zero refund regardless of the
// damage total; the engine never invents a negative deposit.
func SettleDeposit(tenantDamageCents, depositCents int64) (retention, refund int64) {
	if depositCents < 0 {
		depositCents = 0
	}
	retention = tenantDamageCents
	if retention > depositCents {
		retention = depositCents
	}
	if retention < 0 {
		retention = 0
	}
	return retention, depositCents - retention
}
