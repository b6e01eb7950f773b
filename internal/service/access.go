// File: internal/service/access.go
package service

import (
	"transcript-hub/internal/apperror"
	"transcript-hub/internal/model"
)

// RequireRole 角色不符時回傳 Forbidden
func RequireRole(claims *CustomClaims, role model.Role) error {
	if claims == nil || claims.Role != role {
		return apperror.Forbidden(string(role) + " privileges required")
	}
	return nil
}

// AuthorizeTranscriptAccess 管理員或本人才能存取 targetUserID 的 transcript
func AuthorizeTranscriptAccess(claims *CustomClaims, targetUserID int) error {
	if claims == nil {
		return apperror.Forbidden("access denied")
	}
	if claims.IsAdmin() || claims.ID == targetUserID {
		return nil
	}
	return apperror.Forbidden("access denied")
}

// ResolveEffectiveOwner 決定新 transcript 的擁有者
// 只有管理員可以指定其他使用者；0 代表未指定
func ResolveEffectiveOwner(claims *CustomClaims, requestedUserID int) int {
	if claims.IsAdmin() && requestedUserID != 0 {
		return requestedUserID
	}
	return claims.ID
}
