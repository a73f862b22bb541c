package resource

import (
	"fmt"

	"github.com/vkngwrapper/core/v2/common"
)

// CreateStage is the step of resource creation that failed
type CreateStage int32

const (
	StageCreate CreateStage = iota
	StageAllocate
	StageBind
	StageView
	StageUpload
)

var createStageMapping = map[CreateStage]string{
	StageCreate:   "StageCreate",
	StageAllocate: "StageAllocate",
	StageBind:     "StageBind",
	StageView:     "StageView",
	StageUpload:   "StageUpload",
}

func (s CreateStage) String() string {
	str, ok := createStageMapping[s]
	if !ok {
		return "unknown CreateStage"
	}

	return str
}

// CreateError reports a failed image or buffer creation. Every step before Stage has been
// rolled back by the time the error is returned.
type CreateError struct {
	Name   string
	Kind   fmt.Stringer
	Stage  CreateStage
	Result common.VkResult
	Err    error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("failed to create %s %q at %s: %v", e.Kind, e.Name, e.Stage, e.Err)
}

func (e *CreateError) Unwrap() error {
	return e.Err
}
