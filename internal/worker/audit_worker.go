package worker

import (
	"github.com/livara/chat-service/internal/service"
)

// StartAuditWorker registers the audit log event handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
