package insighting

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/prem5599/bizinsights-sub001/infrastructure/repository/mocks"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

func TestServicePersistRankedOrdersByImpactTimesUrgency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInsightRepo := mocks.NewMockInsightRepository(ctrl)
	service := &Service{cfg: &config.Config{}, insights: mockInsightRepo}

	insightA := &domain.Insight{
		Title:       "A",
		ImpactScore: 5,
		Urgency:     domain.InsightUrgencyHigh, // 5 × 3 = 15
	}
	insightB := &domain.Insight{
		Title:       "B",
		ImpactScore: 8,
		Urgency:     domain.InsightUrgencyLow, // 8 × 1 = 8
	}

	mockInsightRepo.EXPECT().
		DeleteOlderThan(gomock.Any(), "org-1", gomock.Any()).
		Return(int64(0), nil)

	var persisted []*domain.Insight
	mockInsightRepo.EXPECT().
		CreateMany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, insights []*domain.Insight) error {
			persisted = insights
			return nil
		})

	result, err := service.persistRanked(context.Background(), "org-1", []*domain.Insight{insightB, insightA})

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	// Impacto menor com urgência maior vence o impacto maior com urgência menor
	assert.Equal(t, "A", result[0].Title)
	assert.Equal(t, "B", result[1].Title)
	assert.Equal(t, result, persisted)
}

func TestServicePersistRankedCapsAtMaxPerRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInsightRepo := mocks.NewMockInsightRepository(ctrl)
	service := &Service{
		cfg:      &config.Config{Insights: config.Insights{MaxPerRun: 10}},
		insights: mockInsightRepo,
	}

	insights := make([]*domain.Insight, 0, 14)
	for i := 0; i < 14; i++ {
		insights = append(insights, &domain.Insight{
			Title:       fmt.Sprintf("insight-%02d", i),
			ImpactScore: float64(i),
			Urgency:     domain.InsightUrgencyMedium,
		})
	}

	mockInsightRepo.EXPECT().
		DeleteOlderThan(gomock.Any(), "org-1", gomock.Any()).
		Return(int64(0), nil)
	mockInsightRepo.EXPECT().
		CreateMany(gomock.Any(), gomock.Any()).
		Return(nil)

	result, err := service.persistRanked(context.Background(), "org-1", insights)

	assert.NoError(t, err)
	assert.Len(t, result, 10)
	// O corte preserva os de maior pontuação
	assert.Equal(t, "insight-13", result[0].Title)
	assert.Equal(t, "insight-04", result[9].Title)
}

func TestServiceGenerateForOrganizationColdStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrationRepo := mocks.NewMockIntegrationRepository(ctrl)
	mockInsightRepo := mocks.NewMockInsightRepository(ctrl)
	service := &Service{
		cfg:          &config.Config{},
		integrations: mockIntegrationRepo,
		insights:     mockInsightRepo,
	}

	// Organização sem nenhuma integração conectada
	mockIntegrationRepo.EXPECT().
		ListByOrganization(gomock.Any(), "org-1", gomock.Any()).
		Return([]*domain.Integration{}, nil)

	mockInsightRepo.EXPECT().
		DeleteOlderThan(gomock.Any(), "org-1", gomock.Any()).
		Return(int64(0), nil)
	mockInsightRepo.EXPECT().
		CreateMany(gomock.Any(), gomock.Any()).
		Return(nil)

	insights, err := service.GenerateForOrganization(context.Background(), "org-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, insights)
	assert.Equal(t, "Conecte sua primeira plataforma", insights[0].Title)
	assert.Equal(t, "onboarding", insights[0].Category)
	assert.True(t, insights[0].Actionable)
}

func TestServiceGenerateAllContinuesOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrationRepo := mocks.NewMockIntegrationRepository(ctrl)
	mockInsightRepo := mocks.NewMockInsightRepository(ctrl)
	service := &Service{
		cfg:          &config.Config{},
		integrations: mockIntegrationRepo,
		insights:     mockInsightRepo,
	}

	mockIntegrationRepo.EXPECT().
		ListOrganizationsWithActiveIntegrations(gomock.Any()).
		Return([]string{"org-falha", "org-ok"}, nil)

	// A primeira organização falha ao listar integrações
	mockIntegrationRepo.EXPECT().
		ListByOrganization(gomock.Any(), "org-falha", gomock.Any()).
		Return(nil, assert.AnError)

	// A segunda segue o fluxo de onboarding normalmente
	mockIntegrationRepo.EXPECT().
		ListByOrganization(gomock.Any(), "org-ok", gomock.Any()).
		Return([]*domain.Integration{}, nil)
	mockInsightRepo.EXPECT().
		DeleteOlderThan(gomock.Any(), "org-ok", gomock.Any()).
		Return(int64(0), nil)
	mockInsightRepo.EXPECT().
		CreateMany(gomock.Any(), gomock.Any()).
		Return(nil)

	total, err := service.GenerateAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestServiceTopUnread(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInsightRepo := mocks.NewMockInsightRepository(ctrl)
	service := &Service{cfg: &config.Config{}, insights: mockInsightRepo}

	mockInsightRepo.EXPECT().
		ListRecent(gomock.Any(), "org-1", domain.InsightFilter{UnreadOnly: true}, 5, 0).
		Return([]*domain.Insight{{Title: "top"}}, nil)

	insights, err := service.TopUnread(context.Background(), "org-1", 0)

	assert.NoError(t, err)
	assert.Len(t, insights, 1)
}
