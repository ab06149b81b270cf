package notification

import (
	"fmt"

	"proconecta/models"
)

// StatusNotification builds the counterparty notification for a
// lifecycle transition. Subject and body are deterministic per new
// status so clients can rely on the wording.
func StatusNotification(req *models.ServiceRequest, newStatus models.ServiceStatus, recipientID string) *models.Notification {
	n := &models.Notification{
		UserID:    recipientID,
		ServiceID: req.ID,
	}

	switch newStatus {
	case models.StatusNegotiating:
		n.Title = "New price proposal"
		n.Body = fmt.Sprintf("A value of %.2f was proposed for %q", req.ProposedValue, req.Title)
	case models.StatusAccepted:
		n.Title = "Demand accepted"
		n.Body = fmt.Sprintf("%s accepted your request %q", req.ProviderName, req.Title)
	case models.StatusInProgress:
		n.Title = "Service started"
		n.Body = fmt.Sprintf("Work on %q is now in progress", req.Title)
	case models.StatusCompleted:
		n.Title = "Service completed"
		n.Body = fmt.Sprintf("%q was marked as completed. Rate your experience!", req.Title)
	case models.StatusCancelled:
		n.Title = "Service cancelled"
		n.Body = fmt.Sprintf("%q was cancelled", req.Title)
	}
	return n
}
