package definition

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/flowkit/flowkit/pkg/models"
	"github.com/flowkit/flowkit/pkg/registry"
	"github.com/flowkit/flowkit/pkg/workflow"
)

// Builder turns definition documents into runnable workflows. The same
// options are applied to every workflow it builds, nested subflows included.
type Builder struct {
	registry *registry.Registry
	validate *validator.Validate
	logger   *slog.Logger
	opts     []workflow.Option
}

func NewBuilder(reg *registry.Registry, logger *slog.Logger, opts ...workflow.Option) *Builder {
	return &Builder{
		registry: reg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		opts:     opts,
	}
}

// Build validates the raw document and constructs the workflow.
func (b *Builder) Build(doc []byte) (*workflow.Workflow, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	var def Definition
	if err := json.Unmarshal(doc, &def); err != nil {
		return nil, fmt.Errorf("failed to decode workflow definition: %w", err)
	}

	return b.BuildDefinition(&def)
}

// BuildDefinition constructs the workflow from an already decoded definition.
func (b *Builder) BuildDefinition(def *Definition) (*workflow.Workflow, error) {
	if err := b.validate.Struct(def); err != nil {
		return nil, fmt.Errorf("invalid workflow definition %q: %w", def.Name, err)
	}

	return b.buildWorkflow(def)
}

func (b *Builder) buildWorkflow(def *Definition) (*workflow.Workflow, error) {
	// Logic and trigger closures need the outputs of the workflow being
	// built, which does not exist until its components do. The getter
	// closes over the variable assigned below.
	var flow *workflow.Workflow

	outputs := func() map[string]any {
		if flow == nil {
			return map[string]any{}
		}

		return flow.Outputs()
	}

	components, err := b.buildComponents(def.Components, outputs)
	if err != nil {
		return nil, fmt.Errorf("failed to build workflow %q: %w", def.Name, err)
	}

	flow = workflow.New(def.Name, def.Description, components, b.opts...)

	return flow, nil
}

func (b *Builder) buildComponents(defs []*ComponentDefinition, outputs func() map[string]any) ([]models.Component, error) {
	components := make([]models.Component, 0, len(defs))

	for _, def := range defs {
		component, err := b.buildComponent(def, outputs)
		if err != nil {
			return nil, err
		}

		components = append(components, component)
	}

	return components, nil
}

func (b *Builder) buildComponent(def *ComponentDefinition, outputs func() map[string]any) (models.Component, error) {
	switch def.Kind {
	case models.KindTask:
		return b.buildTask(def)
	case models.KindTaskGroup:
		return b.buildTaskGroup(def)
	case models.KindLogic:
		return b.buildLogic(def, outputs)
	case models.KindTrigger:
		return b.buildTrigger(def, outputs)
	case models.KindSubflow:
		return b.buildSubflow(def)
	default:
		return nil, fmt.Errorf("component %q has unknown kind %q", def.Name, def.Kind)
	}
}

func (b *Builder) buildTask(def *ComponentDefinition) (*models.Task, error) {
	if def.Type == "" {
		return nil, fmt.Errorf("task %q requires a type", def.Name)
	}

	executor, err := b.registry.CreateExecutor(def.Type, def.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to build task %q: %w", def.Name, err)
	}

	return models.NewTask(def.Name, def.Description, def.Inputs, executor), nil
}

func (b *Builder) buildTaskGroup(def *ComponentDefinition) (*models.TaskGroup, error) {
	if len(def.Tasks) == 0 {
		return nil, fmt.Errorf("task group %q requires at least one task", def.Name)
	}

	mode := def.Mode
	if mode == "" {
		mode = models.ModeSequential
	}

	tasks := make([]*models.Task, 0, len(def.Tasks))

	for _, taskDef := range def.Tasks {
		if taskDef.Kind != models.KindTask {
			return nil, fmt.Errorf("task group %q may only contain tasks, found %q", def.Name, taskDef.Kind)
		}

		task, err := b.buildTask(taskDef)
		if err != nil {
			return nil, fmt.Errorf("failed to build task group %q: %w", def.Name, err)
		}

		tasks = append(tasks, task)
	}

	return models.NewTaskGroup(def.Name, def.Description, mode, tasks), nil
}

// buildLogic wires the declarative switch form: the evaluator compares the
// named workflow output against the case keys at dispatch time and returns
// the pre-built components of the matching branch.
func (b *Builder) buildLogic(def *ComponentDefinition, outputs func() map[string]any) (*models.Logic, error) {
	if def.Switch == nil {
		return nil, fmt.Errorf("logic %q requires a switch", def.Name)
	}

	cases := make(map[string][]models.Component, len(def.Switch.Cases))

	for key, caseDefs := range def.Switch.Cases {
		caseComponents, err := b.buildComponents(caseDefs, outputs)
		if err != nil {
			return nil, fmt.Errorf("failed to build logic %q case %q: %w", def.Name, key, err)
		}

		cases[key] = caseComponents
	}

	defaultComponents, err := b.buildComponents(def.Switch.Default, outputs)
	if err != nil {
		return nil, fmt.Errorf("failed to build logic %q default: %w", def.Name, err)
	}

	outputKey := def.Switch.Output

	evaluator := func(ctx context.Context) ([]models.Component, error) {
		value, exists := outputs()[outputKey]
		if !exists {
			return defaultComponents, nil
		}

		key := fmt.Sprintf("%v", value)
		if branch, ok := cases[key]; ok {
			return branch, nil
		}

		return defaultComponents, nil
	}

	return models.NewLogic(def.Name, def.Description, evaluator), nil
}

// buildTrigger composes the registry wait function with the components the
// trigger emits when it fires.
func (b *Builder) buildTrigger(def *ComponentDefinition, outputs func() map[string]any) (*models.Trigger, error) {
	if def.Type == "" {
		return nil, fmt.Errorf("trigger %q requires a type", def.Name)
	}

	wait, err := b.registry.CreateWait(def.Type, def.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to build trigger %q: %w", def.Name, err)
	}

	emit, err := b.buildComponents(def.Components, outputs)
	if err != nil {
		return nil, fmt.Errorf("failed to build trigger %q components: %w", def.Name, err)
	}

	waiter := func(ctx context.Context) ([]models.Component, error) {
		if err := wait(ctx); err != nil {
			return nil, err
		}

		return emit, nil
	}

	return models.NewTrigger(def.Name, def.Description, waiter), nil
}

func (b *Builder) buildSubflow(def *ComponentDefinition) (*models.Subflow, error) {
	if def.Workflow == nil {
		return nil, fmt.Errorf("subflow %q requires a nested workflow", def.Name)
	}

	nested, err := b.buildWorkflow(def.Workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to build subflow %q: %w", def.Name, err)
	}

	return models.NewSubflow(def.Name, def.Description, nested), nil
}
