/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package ops

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
)

// CommandGroup represents the operational classification of commands
type CommandGroup string

const (
	GroupSupport CommandGroup = "support" // version, help surfaces
	GroupAudit   CommandGroup = "audit"   // inventory audits and reports
)

// CommandCategory refines a group into the kind of work a command performs
type CommandCategory string

const (
	// Audit categories
	CategoryClassification CommandCategory = "classification" // paid/free inference
	CategoryReconciliation CommandCategory = "reconciliation" // set diff between inventories
	CategoryAggregation    CommandCategory = "aggregation"    // keyed summaries with detail caps
	CategoryValidation     CommandCategory = "validation"     // shape checks on categorization files
	CategoryDatabase       CommandCategory = "database"       // fleet database queries
	CategorySource         CommandCategory = "source"         // source-tree scans

	// Support categories
	CategoryInformation CommandCategory = "information"
)

// Capabilities describes what a command touches at run time
type Capabilities struct {
	ReadsFiles    bool // consumes local inventory files
	ReadsDatabase bool // opens the fleet database
	EmitsReport   bool // renders an audit report to stdout
}

// GetDefaultCapabilities returns the standard capabilities for a group/category pair
func GetDefaultCapabilities(group CommandGroup, category CommandCategory) Capabilities {
	if group != GroupAudit {
		return Capabilities{}
	}
	caps := Capabilities{EmitsReport: true}
	if category == CategoryDatabase {
		caps.ReadsDatabase = true
	} else {
		caps.ReadsFiles = true
	}
	return caps
}

// defaultCategoryForGroup maps a group to its fallback category for plain registration
func defaultCategoryForGroup(group CommandGroup) CommandCategory {
	if group == GroupAudit {
		return CategoryClassification
	}
	return CategoryInformation
}

// CommandRegistration represents a registered command with its classification
type CommandRegistration struct {
	Name         string
	Group        CommandGroup
	Category     CommandCategory
	Capabilities Capabilities
	Command      *cobra.Command
	Description  string
}

// Registry manages command classifications and registrations
type Registry struct {
	mu         sync.RWMutex
	commands   map[string]*CommandRegistration
	groupIndex map[CommandGroup][]*CommandRegistration
}

// Global registry instance
var globalRegistry = &Registry{
	commands:   make(map[string]*CommandRegistration),
	groupIndex: make(map[CommandGroup][]*CommandRegistration),
}

// GetRegistry returns the global command registry
func GetRegistry() *Registry {
	return globalRegistry
}

// RegisterCommand registers a command with its operational classification
func RegisterCommand(name string, group CommandGroup, cmd *cobra.Command, description string) error {
	return GetRegistry().Register(name, group, cmd, description)
}

// RegisterCommandWithTaxonomy registers a command with full taxonomy detail
func RegisterCommandWithTaxonomy(name string, group CommandGroup, category CommandCategory, caps Capabilities, cmd *cobra.Command, description string) error {
	return GetRegistry().RegisterWithTaxonomy(name, group, category, caps, cmd, description)
}

// Register adds a command using the group's default category and capabilities
func (r *Registry) Register(name string, group CommandGroup, cmd *cobra.Command, description string) error {
	category := defaultCategoryForGroup(group)
	return r.RegisterWithTaxonomy(name, group, category, GetDefaultCapabilities(group, category), cmd, description)
}

// RegisterWithTaxonomy adds a command to the registry with explicit taxonomy
func (r *Registry) RegisterWithTaxonomy(name string, group CommandGroup, category CommandCategory, caps Capabilities, cmd *cobra.Command, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	registration := &CommandRegistration{
		Name:         name,
		Group:        group,
		Category:     category,
		Capabilities: caps,
		Command:      cmd,
		Description:  description,
	}

	r.commands[name] = registration
	r.groupIndex[group] = append(r.groupIndex[group], registration)

	return nil
}

// GetCommand returns a registered command by name
func (r *Registry) GetCommand(name string) (*CommandRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetCommandsByGroup returns all commands in a specific group
func (r *Registry) GetCommandsByGroup(group CommandGroup) []*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.groupIndex[group]
}

// GetAuditCommands returns all commands classified as audit operations
func (r *Registry) GetAuditCommands() []*CommandRegistration {
	return r.GetCommandsByGroup(GroupAudit)
}

// GetAllCommands returns all registered commands
func (r *Registry) GetAllCommands() map[string]*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*CommandRegistration)
	for k, v := range r.commands {
		result[k] = v
	}
	return result
}

// ListGroups returns all command groups and their command counts
func (r *Registry) ListGroups() map[CommandGroup]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[CommandGroup]int)
	for group, commands := range r.groupIndex {
		result[group] = len(commands)
	}
	return result
}
