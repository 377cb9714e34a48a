package dao

import (
	_ "embed"
)

// Schema 建表脚本
//
//go:embed schema.sql
var Schema string

const (
	tableCharacters     = "characters"
	tableLedgerEntries  = "ledger_entries"
	tableEquipmentSlots = "equipment_slots"
)
