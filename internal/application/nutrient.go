package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"nutrient-bot/internal/domain/analysis"
	"nutrient-bot/internal/domain/entity"
	"nutrient-bot/internal/domain/port"
)

// Stage — шаг конвейера анализа. Конвейер идёт только вперёд.
type Stage string

const (
	StageDecoding    Stage = "decoding"
	StageNormalizing Stage = "normalizing"
	StageMasking     Stage = "masking"
	StageLabeling    Stage = "labeling"
	StageComposing   Stage = "composing"
	StageNotifying   Stage = "notifying"
	StageRecording   Stage = "recording"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

const (
	defaultMailTimeout   = 10 * time.Second
	defaultRecordTimeout = 3 * time.Second
)

var errMailerNotConfigured = errors.New("mailer is not configured")

// StageError — ошибка конвейера вместе с шагом, на котором он остановился.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NutrientRequest — входные данные одного запроса.
type NutrientRequest struct {
	Image        []byte
	MobileNumber string
	Email        string
	UserID       *string
}

// NutrientOutput содержит ответ и подробности оповещений.
type NutrientOutput struct {
	Result       *entity.NutrientResult
	Notification entity.NotificationOutcome
	// Trace — пройденные шаги по порядку, последний всегда StageDone.
	Trace []Stage
}

// NutrientService последовательно выполняет анализ снимка, оповещения и запись результата.
type NutrientService struct {
	decoder port.ImageDecoder
	links   port.LinkBuilder
	mailer  port.Mailer
	records port.RecordStore

	MailTimeout   time.Duration
	RecordTimeout time.Duration
	now           func() time.Time
}

// NewNutrientService создаёт сервис. decoder обязателен, mailer и records могут быть nil.
func NewNutrientService(decoder port.ImageDecoder, links port.LinkBuilder, mailer port.Mailer, records port.RecordStore) *NutrientService {
	if decoder == nil {
		panic("app: NewNutrientService called with nil decoder")
	}
	return &NutrientService{
		decoder:       decoder,
		links:         links,
		mailer:        mailer,
		records:       records,
		MailTimeout:   defaultMailTimeout,
		RecordTimeout: defaultRecordTimeout,
		now:           time.Now,
	}
}

// Analyze выполняет конвейер. Ошибка возвращается только для некорректного изображения
// и имеет тип *StageError; сбои почты и хранилища отражаются в результате.
func (s *NutrientService) Analyze(ctx context.Context, req NutrientRequest) (*NutrientOutput, error) {
	out := &NutrientOutput{}
	enter := func(stage Stage) {
		out.Trace = append(out.Trace, stage)
	}
	fail := func(stage Stage, err error) error {
		log.Printf("nutrient: %s -> %s: %v", stage, StageFailed, err)
		return &StageError{Stage: stage, Err: err}
	}

	enter(StageDecoding)
	grid, err := s.decoder.Decode(req.Image)
	if err == nil && grid.Empty() {
		err = entity.ErrInvalidInput
	}
	if err != nil {
		return nil, fail(StageDecoding, err)
	}

	enter(StageNormalizing)
	intensity, err := analysis.Normalize(grid)
	if err != nil {
		// Decode уже проверил размеры, сюда попадаем только при нарушении контракта декодера.
		return nil, fail(StageNormalizing, err)
	}

	enter(StageMasking)
	mask := analysis.DeficiencyMask(intensity)

	enter(StageLabeling)
	regions := analysis.LabelRegions(mask)

	enter(StageComposing)
	messages, body := ComposeMessages(regions)
	result := &entity.NutrientResult{
		RegionCount: len(regions),
		Regions:     regions,
		Messages:    messages,
	}

	enter(StageNotifying)
	out.Notification = s.notify(ctx, req, len(regions) > 0, body)
	result.WhatsAppURL = out.Notification.WhatsAppURL
	if out.Notification.EmailSent {
		email := req.Email
		result.EmailSentTo = &email
	}

	enter(StageRecording)
	s.record(ctx, req, result)

	enter(StageDone)
	out.Result = result
	return out, nil
}

// AnalyzeForUser запускает анализ с контактами пользователя бота.
func (s *NutrientService) AnalyzeForUser(ctx context.Context, user *entity.User, photo []byte) (*NutrientOutput, error) {
	userID := strconv.FormatInt(user.ID, 10)
	contact := user.Contact()
	return s.Analyze(ctx, NutrientRequest{
		Image:        photo,
		MobileNumber: contact.MobileNumber,
		Email:        contact.Email,
		UserID:       &userID,
	})
}

// notify строит ссылку и отправляет письмо; ни один из каналов не прерывает конвейер.
func (s *NutrientService) notify(ctx context.Context, req NutrientRequest, hasRegions bool, body string) entity.NotificationOutcome {
	var outcome entity.NotificationOutcome

	// Ссылкой делимся только когда есть что показать.
	if hasRegions && s.links != nil {
		if url, ok := s.links.BuildLink(req.MobileNumber, body); ok {
			outcome.WhatsAppURL = &url
		}
	}

	if req.Email == "" {
		return outcome
	}
	if s.mailer == nil {
		outcome.EmailError = errMailerNotConfigured
	} else {
		mailCtx, cancel := context.WithTimeout(ctx, s.MailTimeout)
		outcome.EmailError = s.mailer.Send(mailCtx, AlertSubject, body, req.Email)
		cancel()
	}

	if outcome.EmailError != nil {
		log.Printf("nutrient: %s: email to %s failed: %v", StageNotifying, req.Email, outcome.EmailError)
	} else {
		outcome.EmailSent = true
	}
	return outcome
}

// record передаёт документ во внешнее хранилище; ошибки только логируются.
func (s *NutrientService) record(ctx context.Context, req NutrientRequest, result *entity.NutrientResult) {
	if s.records == nil {
		return
	}

	doc := &entity.NutrientRecord{
		ID:         uuid.New().String(),
		Prediction: *result,
		Input:      entity.ContactInput{MobileNumber: req.MobileNumber, Email: req.Email},
		UserID:     req.UserID,
		Timestamp:  s.now(),
	}

	recCtx, cancel := context.WithTimeout(ctx, s.RecordTimeout)
	defer cancel()

	if err := s.records.Save(recCtx, doc); err != nil {
		log.Printf("nutrient: %s: save record %s failed: %v", StageRecording, doc.ID, err)
	}
}
