// Package prompt composes the decision prompt sent to the model.
//
// One fixed template with six placeholder slots carries the per-request
// state; one fixed system instruction carries the agent persona, the action
// catalogue, and the output-format contract. The protocol is stateless per
// request, so the full instruction and history are resent on every call and
// per-call cost is bounded only by caller-side history truncation.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/codeBunny2022/gwsmaa/actions"
)

// Context is the input bundle for one decision request. All six fields are
// required; presence is enforced at the request boundary, not here.
type Context struct {
	Task              string
	AlreadyDone       string
	WorkspaceContent  string
	PromptHistory     string
	CurrentServiceURL string
	ServiceHistory    string
}

const baseTemplate = `
## Visited Services History:

$$service_history$$

----- End of Service History -----



## TASK HISTORY:

$$prompt_history$$

----- End of TASK History -----


## ACTIONS HISTORY:

$$already_done$$

----- End of Actions History -----



## TEXTUAL CONTENT OF CURRENT WORKSPACE:

$$$WORKSPACE_CONTENT$$$

----- End of Workspace Content -----


## Current Service URL: $$current_service_url$$

## YOUR CURRENT OBJECTIVE: $$task$$
`

const systemTemplate = `
# System Prompt/Custom Instructions

## Goal

You are GWMAA, a multi-action agent developed by "Google Workspace Team at Persist Ventures," designed to help users complete tasks efficiently using Google Workspace. You can navigate to https://workspace.google.com if someone asks for more information about Google Workspace.

## Task Overview

1. **Objective**: Achieve the given task using available Google Workspace functions.
2. **Task History**: You have access to the history of completed tasks and actions.
3. **Workspace Interface**: You have access to screenshots and a text description of the current workspace window.
4. **Available Functions**: Utilize the provided functions to complete the task effectively.

## Available Functions

%s
- All argument values are mandatory.


# Very Important Note!
- Only and Only give a python dictionary or JSON in output.
- Do not give response without JSON or dictionary format.


## Key Guidelines

### Task Execution

- Start by finding the required information, usually by accessing a Google Workspace service.
- Always ensure to navigate to the necessary service first, like open_gmail(), open_drive(), etc.
- Make sure user credentials are correctly managed and requests are authentic.
- End the task with done() if the task is already completed.
- Always make decisions that move you towards completing the objective.

## Output Format

Provide a single JSON object with two keys:

1. thought: Your high level thought (string).
2. actions: A list of strings representing the step(s) to complete the task.

### Example Outputs

1.
    {
    "thought": "I am opening Gmail to send an email to the recipient.",
    "actions": ["open_gmail()", "send_email('example@example.com', 'Subject', 'Email body')"]
    }

2.
    {
    "thought": "I am opening Google Drive to create a new document with the specified content.",
    "actions": ["open_drive()", "create_document('New Document', 'This is the content of the new document.')"]
    }

---

**Reference Information**

- **Today's Date (India)**: %s
- **Current Time (India)**: %s

- Only and Only give a python dictionary or JSON in output.
- Do not give response without JSON or dictionary format.
`

// Builder renders prompts from the fixed templates.
type Builder struct{}

// NewBuilder returns a prompt builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build substitutes all six context slots into the base template. Content is
// inserted verbatim; callers own placeholder-collision safety.
func (b *Builder) Build(ctx Context) string {
	p := baseTemplate
	p = strings.ReplaceAll(p, "$$task$$", ctx.Task)
	p = strings.ReplaceAll(p, "$$already_done$$", ctx.AlreadyDone)
	p = strings.ReplaceAll(p, "$$$WORKSPACE_CONTENT$$$", ctx.WorkspaceContent)
	p = strings.ReplaceAll(p, "$$prompt_history$$", ctx.PromptHistory)
	p = strings.ReplaceAll(p, "$$service_history$$", ctx.ServiceHistory)
	p = strings.ReplaceAll(p, "$$current_service_url$$", ctx.CurrentServiceURL)
	return p
}

// SystemInstruction renders the fixed system instruction with the action
// catalogue and the given timestamp. The timestamp is supplied per call so
// a long-lived process never serves a stale date.
func (b *Builder) SystemInstruction(now time.Time) string {
	return fmt.Sprintf(systemTemplate,
		actions.SignatureList(),
		now.Format("2006-01-02"),
		now.Format("15:04:05"),
	)
}
