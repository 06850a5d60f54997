package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"travelbot/internal/model"
	"travelbot/pkg/logger"
)

// Conversation is the abstract prompt/response port a dialog session runs
// over. One prompt out, one line of text in; a terminal, a WebSocket
// connection and a scripted test fake all satisfy it.
type Conversation interface {
	// Ask sends a prompt and blocks for the user's reply
	Ask(ctx context.Context, prompt string) (string, error)
	// Say sends text without expecting a reply
	Say(ctx context.Context, text string) error
}

// Extractor is the structured-extraction dependency of the dialog
type Extractor interface {
	Extract(ctx context.Context, userText string) (*model.Criteria, error)
}

// DialogState identifies a position in the session state machine
type DialogState int

const (
	StateStart DialogState = iota
	StateExtracting
	StateFillingRequired
	StateFillingOptional
	StateConfirming
	StateEditing
	StateFiltering
	StateRecommendingHotels
	StateRecommendingCar
	StateDone
)

func (s DialogState) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateExtracting:
		return "EXTRACTING"
	case StateFillingRequired:
		return "FILLING_REQUIRED"
	case StateFillingOptional:
		return "FILLING_OPTIONAL"
	case StateConfirming:
		return "CONFIRMING"
	case StateEditing:
		return "EDITING"
	case StateFiltering:
		return "FILTERING"
	case StateRecommendingHotels:
		return "RECOMMENDING_HOTELS"
	case StateRecommendingCar:
		return "RECOMMENDING_CAR"
	case StateDone:
		return "DONE"
	}
	return "UNKNOWN"
}

const introPrompt = `Enter request (e.g. "Book flight from A to B on July 4th"):`

var requiredPrompts = map[string]string{
	model.FieldDepartureCity: "Please tell me your departure city:",
	model.FieldArrivalCity:   "Please tell me your arrival city:",
	model.FieldDepartureDate: "Please tell me your departure date (YYYY-MM-DD):",
}

var optionalPrompts = map[string]string{
	model.FieldDepartureTime: "Preferred departure time? (HH:MM or null):",
	model.FieldArrivalTime:   "Preferred arrival time? (HH:MM or null):",
	model.FieldMaxPrice:      "Maximum price? (e.g. 300 or $300, or null):",
	model.FieldWifiAvailable: "Need in-flight WiFi? (yes/no/null):",
	model.FieldDirect:        "Require a direct flight? (yes/no/null):",
}

// SessionResult reports where a finished session ended up
type SessionResult struct {
	State       DialogState
	Criteria    *model.Criteria // frozen record used for filtering
	Matches     []model.Flight
	BookingLink string
}

// DialogController drives recommendation sessions: extraction, iterative
// field collection, the confirm/edit cycle and the transition into filtering
// and follow-up recommendations. One controller serves many sessions; all
// per-session state lives in the session struct created by Run.
type DialogController struct {
	extractor   Extractor
	filter      *FlightFilterEngine
	booking     *BookingLinkBuilder
	recommender *RecommendationComposer
	log         *logger.Logger
}

// NewDialogController creates a dialog controller
func NewDialogController(
	extractor Extractor,
	filter *FlightFilterEngine,
	booking *BookingLinkBuilder,
	recommender *RecommendationComposer,
	log *logger.Logger,
) *DialogController {
	return &DialogController{
		extractor:   extractor,
		filter:      filter,
		booking:     booking,
		recommender: recommender,
		log:         log.Named("dialog"),
	}
}

// session holds the mutable state of one running dialog
type session struct {
	ctrl     *DialogController
	conv     Conversation
	state    DialogState
	criteria *model.Criteria
	result   *SessionResult
}

// Run executes one session to completion over the given conversation. It
// returns an error only when the conversation itself fails; every bad input
// and collaborator failure keeps the session alive. Each transition completes
// fully before the next input is accepted.
func (d *DialogController) Run(ctx context.Context, conv Conversation) (*SessionResult, error) {
	s := &session{
		ctrl:     d,
		conv:     conv,
		state:    StateStart,
		criteria: &model.Criteria{},
		result:   &SessionResult{},
	}

	for s.state != StateDone {
		var (
			next DialogState
			err  error
		)
		switch s.state {
		case StateStart:
			next, err = s.start(ctx)
		case StateFillingRequired:
			next, err = s.fillRequired(ctx)
		case StateFillingOptional:
			next, err = s.fillOptional(ctx)
		case StateConfirming:
			next, err = s.confirm(ctx)
		case StateEditing:
			next, err = s.edit(ctx)
		case StateFiltering:
			next, err = s.filter(ctx)
		case StateRecommendingHotels:
			next, err = s.recommendHotels(ctx)
		case StateRecommendingCar:
			next, err = s.recommendCar(ctx)
		default:
			return nil, fmt.Errorf("dialog reached invalid state %s", s.state)
		}
		if err != nil {
			return nil, err
		}
		s.state = next
	}

	s.result.State = StateDone
	return s.result, nil
}

// start collects the initial utterance and runs extraction exactly once.
// Extraction failure of any kind degrades to an all-null record; the
// extractor itself is never retried.
func (s *session) start(ctx context.Context) (DialogState, error) {
	utterance, err := s.conv.Ask(ctx, introPrompt)
	if err != nil {
		return s.state, err
	}

	s.state = StateExtracting
	criteria, extractErr := s.ctrl.extractor.Extract(ctx, utterance)
	if extractErr != nil {
		s.ctrl.log.Warn("extraction failed, falling back to manual collection", logger.Error(extractErr))
		if err := s.conv.Say(ctx, "I couldn't parse that automatically, let me ask a few questions."); err != nil {
			return s.state, err
		}
		criteria = &model.Criteria{}
	}
	s.criteria = criteria

	return StateFillingRequired, nil
}

// fillRequired re-prompts each missing required field until a valid value is
// obtained. No field is ever skipped.
func (s *session) fillRequired(ctx context.Context) (DialogState, error) {
	for _, field := range model.RequiredFields {
		for s.criteria.RequiredValue(field) == "" {
			answer, err := s.conv.Ask(ctx, requiredPrompts[field])
			if err != nil {
				return s.state, err
			}
			if applyErr := ApplyField(s.criteria, field, answer); applyErr != nil {
				var vErr *ValidationError
				if errors.As(applyErr, &vErr) {
					if err := s.conv.Say(ctx, vErr.Reason); err != nil {
						return s.state, err
					}
				}
			}
		}
	}
	return StateFillingOptional, nil
}

// fillOptional prompts each unset optional field exactly once; any answer,
// parsable or not, resolves the field to a value or to no-constraint.
func (s *session) fillOptional(ctx context.Context) (DialogState, error) {
	for _, field := range model.OptionalFields {
		if s.criteria.OptionalSet(field) {
			continue
		}
		answer, err := s.conv.Ask(ctx, optionalPrompts[field])
		if err != nil {
			return s.state, err
		}
		_ = ApplyField(s.criteria, field, answer)
	}
	return StateConfirming, nil
}

// confirm presents the full record and reads a yes/no. Anything else
// re-prompts without changing state.
func (s *session) confirm(ctx context.Context) (DialogState, error) {
	summary, _ := json.MarshalIndent(s.criteria, "", "  ")
	if err := s.conv.Say(ctx, "Here is your complete flight request:\n"+string(summary)); err != nil {
		return s.state, err
	}

	for {
		answer, err := s.conv.Ask(ctx, "Is this correct? (yes/no)")
		if err != nil {
			return s.state, err
		}
		confirmed := NormalizeBool(answer)
		if confirmed == nil {
			if err := s.conv.Say(ctx, "Please answer yes or no."); err != nil {
				return s.state, err
			}
			continue
		}
		if *confirmed {
			return StateFiltering, nil
		}
		return StateEditing, nil
	}
}

// edit updates exactly one field, then returns to confirmation. Unrecognized
// field names are reported and re-requested without leaving the state.
func (s *session) edit(ctx context.Context) (DialogState, error) {
	var field string
	for {
		answer, err := s.conv.Ask(ctx, "Which field do you want to update?")
		if err != nil {
			return s.state, err
		}
		field = strings.TrimSpace(answer)
		if model.IsKnownField(field) {
			break
		}
		if err := s.conv.Say(ctx, "Unknown field."); err != nil {
			return s.state, err
		}
	}

	for {
		answer, err := s.conv.Ask(ctx, fmt.Sprintf("Enter new value for %s (or 'null'):", field))
		if err != nil {
			return s.state, err
		}
		applyErr := ApplyField(s.criteria, field, answer)
		if applyErr == nil {
			return StateConfirming, nil
		}
		// Only required fields can fail normalization; re-prompt the value.
		var vErr *ValidationError
		if errors.As(applyErr, &vErr) {
			if err := s.conv.Say(ctx, vErr.Reason); err != nil {
				return s.state, err
			}
		}
	}
}

// filter freezes the record, computes the match set and emits either the
// booking link or the no-match fallback link.
func (s *session) filter(ctx context.Context) (DialogState, error) {
	frozen := s.criteria.Clone()
	matches := s.ctrl.filter.Filter(frozen)
	s.ctrl.log.Info("filtered flights",
		logger.String("departure_city", frozen.DepartureCity),
		logger.String("arrival_city", frozen.ArrivalCity),
		logger.String("departure_date", frozen.DepartureDate),
		logger.Int("matches", len(matches)))

	s.result.Criteria = frozen
	s.result.Matches = matches

	if len(matches) == 0 {
		msg := "No flights match your criteria, but you could go through this link to find more flight options: " +
			FallbackFlightSearchLink
		if err := s.conv.Say(ctx, msg); err != nil {
			return s.state, err
		}
		return StateRecommendingHotels, nil
	}

	if err := s.conv.Say(ctx, formatMatches(matches)); err != nil {
		return s.state, err
	}
	s.result.BookingLink = s.ctrl.booking.Build(frozen, matches)
	if err := s.conv.Say(ctx, "Here is the booking link for the flight that suits you:\n"+s.result.BookingLink); err != nil {
		return s.state, err
	}
	return StateRecommendingHotels, nil
}

func (s *session) recommendHotels(ctx context.Context) (DialogState, error) {
	arrivalCity := s.result.Criteria.ArrivalCity

	answer, err := s.conv.Ask(ctx, fmt.Sprintf("Would you like hotel recommendations in %s? (yes/no)", arrivalCity))
	if err != nil {
		return s.state, err
	}
	if yes := NormalizeBool(answer); yes == nil || !*yes {
		if err := s.conv.Say(ctx, "Okay, happy travels! Let me know if I can help with anything else."); err != nil {
			return s.state, err
		}
		return StateRecommendingCar, nil
	}

	choice, err := s.conv.Ask(ctx, "Filter hotels by Brand group or Star grade? (brand/grade)")
	if err != nil {
		return s.state, err
	}

	dimension := HotelDimensionGrade
	label := "grade"
	var available []string
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(choice)), "b") {
		dimension = HotelDimensionBrand
		label = "brand group"
		available = s.ctrl.recommender.Brands()
	} else {
		available = s.ctrl.recommender.Grades()
	}

	pref, err := s.conv.Ask(ctx, fmt.Sprintf("Available %ss: %s\nEnter preferred %s:",
		label, strings.Join(available, ", "), label))
	if err != nil {
		return s.state, err
	}

	picks, sampleErr := s.ctrl.recommender.SampleHotels(dimension, strings.TrimSpace(pref))
	if sampleErr != nil {
		msg := "No hotels found for that category, but you could go through this link to find more hotel options: " +
			FallbackHotelSearchLink
		if err := s.conv.Say(ctx, msg); err != nil {
			return s.state, err
		}
		return StateRecommendingCar, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here are your hotel recommendations in %s:\n", arrivalCity)
	sb.WriteString("Great news! Booking with these hotels can earn MileagePlus award miles.\n")
	for _, h := range picks {
		fmt.Fprintf(&sb, "- %s (%s, %s)\n  Link: %s\n", h.Name, h.Brand, h.Grade, h.Link)
	}
	if err := s.conv.Say(ctx, sb.String()); err != nil {
		return s.state, err
	}
	return StateRecommendingCar, nil
}

func (s *session) recommendCar(ctx context.Context) (DialogState, error) {
	answer, err := s.conv.Ask(ctx, "Would you like a car rental recommendation? (yes/no)")
	if err != nil {
		return s.state, err
	}
	if yes := NormalizeBool(answer); yes != nil && *yes {
		msg := "Car rental link:\n" + CarRentalLink + "\n" +
			"Book a car with this link and earn up to 1,250 award miles per qualifying rental."
		if err := s.conv.Say(ctx, msg); err != nil {
			return s.state, err
		}
	}
	return StateDone, nil
}

func formatMatches(matches []model.Flight) string {
	var sb strings.Builder
	sb.WriteString("Recommending flights that best suit you:\n")
	for _, f := range matches {
		fmt.Fprintf(&sb, "%s  %s -> %s  %s -> %s  $%.2f  wifi=%t direct=%t\n",
			f.FlightNumber,
			f.DepartureCity, f.ArrivalCity,
			f.DepartureTime.Format("2006-01-02 15:04"),
			f.ArrivalTime.Format("15:04"),
			f.PriceUSD, f.WifiAvailable, f.Direct)
	}
	return sb.String()
}
