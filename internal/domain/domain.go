package domain

import "github.com/ShaikhHussain06/Skill-sculptor/internal/domain/roadmap"

type Level = roadmap.Level

const (
	LevelBeginner     = roadmap.LevelBeginner
	LevelIntermediate = roadmap.LevelIntermediate
	LevelAdvanced     = roadmap.LevelAdvanced
)

type StepStatus = roadmap.StepStatus

const (
	StepPending   = roadmap.StepPending
	StepCurrent   = roadmap.StepCurrent
	StepCompleted = roadmap.StepCompleted
)

type Resource = roadmap.Resource
type Step = roadmap.Step
type Roadmap = roadmap.Roadmap
type RoadmapSummary = roadmap.Summary

type Dashboard = roadmap.Dashboard
type SavedRoadmap = roadmap.SavedRoadmap
type CompletedStep = roadmap.CompletedStep

var (
	NormalizeLevel = roadmap.NormalizeLevel
	StepTitles     = roadmap.StepTitles
	NewSteps       = roadmap.NewSteps
	DefaultGoal    = roadmap.DefaultGoal
	CompleteStep   = roadmap.CompleteStep
	CloneSteps     = roadmap.CloneSteps
	NewDashboard   = roadmap.NewDashboard
)

var ErrStepIndexOutOfRange = roadmap.ErrStepIndexOutOfRange
