package recognition

import (
	"github.com/zjrosen/petsense/internal/source"
	"github.com/zjrosen/petsense/internal/ui/toaster"
	"github.com/zjrosen/petsense/internal/workflow"
)

type noticeCopy struct {
	title string
	body  string
	style toaster.Style
}

func noticeText(n workflow.NoticeMsg) noticeCopy {
	switch n.Kind {
	case workflow.PermissionDenied:
		if n.Source == source.KindCamera {
			return noticeCopy{
				title: "Camera access denied",
				body:  "Allow camera access to take a photo of your pet.",
				style: toaster.StyleError,
			}
		}
		return noticeCopy{
			title: "Photo library access denied",
			body:  "Allow access to your photo library to choose a picture.",
			style: toaster.StyleError,
		}
	case workflow.NoImageSelected:
		return noticeCopy{title: "Please select a photo first", style: toaster.StyleWarn}
	case workflow.SourceUnavailable:
		if n.Source == source.KindCamera {
			return noticeCopy{title: "Camera is not available", style: toaster.StyleError}
		}
		return noticeCopy{title: "Could not open the photo", style: toaster.StyleError}
	default:
		return noticeCopy{title: n.Kind.String(), style: toaster.StyleInfo}
	}
}

// failureHint explains a failed submission in one line.
func failureHint(kind workflow.ErrorKind) string {
	switch kind {
	case workflow.Timeout:
		return "The server took too long"
	case workflow.ServerError:
		return "The server returned an error"
	case workflow.MalformedResponse:
		return "Unexpected response from the server"
	default:
		return "Could not reach the server"
	}
}
