package notify

// SetTTY forces interactive or plain output.
func (pg *ProgressGroup) SetTTY(isTTY bool) {
	pg.isTTY = isTTY
}
