package model

import "github.com/cockroachdb/errors"

// 校验类错误：调用方输入问题，不重试，且不产生任何写入
var (
	ErrAttributeInvalid        = errors.New("attribute code is invalid")
	ErrAttributeCapExceeded    = errors.New("attribute cap exceeded")
	ErrLevelOutOfRange         = errors.New("level out of range")
	ErrRequirementsNotMet      = errors.New("item requirements not met")
	ErrNothingEquipped         = errors.New("nothing equipped in slot")
	ErrInvalidPointAmount      = errors.New("invalid point amount")
	ErrInvalidExperienceAmount = errors.New("invalid experience amount")
	ErrSlotInvalid             = errors.New("slot type is invalid")
	ErrItemSlotMismatch        = errors.New("item does not fit slot")
	ErrRaceUnknown             = errors.New("race is unknown")
	ErrTransformationUnknown   = errors.New("transformation is unknown")
	ErrTransformationLocked    = errors.New("transformation is locked")
	ErrCategoryInvalid         = errors.New("ledger category is invalid")
	ErrCharacterRetired        = errors.New("character is retired")
)

var (
	// ErrInsufficientBalance 余额不足，在任何写入之前检查
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrCharacterNotFound 角色不存在
	ErrCharacterNotFound = errors.New("character not found")

	// ErrConcurrentModification 版本号校验失败，说明单写者约束被破坏
	ErrConcurrentModification = errors.New("concurrent modification")
)

var validationErrors = []error{
	ErrAttributeInvalid, ErrAttributeCapExceeded, ErrLevelOutOfRange,
	ErrRequirementsNotMet, ErrNothingEquipped, ErrInvalidPointAmount,
	ErrInvalidExperienceAmount, ErrSlotInvalid, ErrItemSlotMismatch,
	ErrRaceUnknown, ErrTransformationUnknown, ErrTransformationLocked,
	ErrCategoryInvalid, ErrCharacterRetired,
}

// IsValidation 是否为调用方输入错误
func IsValidation(err error) bool {
	return errors.IsAny(err, validationErrors...)
}
