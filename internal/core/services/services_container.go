package services

import (
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/waste_approval_app/internal/core/ports/services"
	"github.com/SscSPs/waste_approval_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.WorkflowNotifier) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		ApprovalLevel: NewApprovalLevelService(repos.ApprovalLevelRepo, repos.UserDirectory),
		Workflow: NewWorkflowService(repos,
			WithLadderMode(cfg.LadderMode),
			WithNotifier(notifier),
		),
	}
}
