package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"venuedesk/config"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{101.7, 101.7},
		{1.005, 1.01},
		{-2.345, -2.35},
		{0, 0},
		{11.699999999999999, 11.7},
	}
	for _, tt := range tests {
		if got := RoundMoney(tt.in); got != tt.want {
			t.Errorf("RoundMoney(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSumMoney(t *testing.T) {
	if got := SumMoney(0.1, 0.2, 0.3); got != 0.6 {
		t.Errorf("SumMoney = %v, want 0.6", got)
	}
	if got := SumMoney(); got != 0 {
		t.Errorf("SumMoney() = %v", got)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	prev := config.AppConfig
	defer func() { config.AppConfig = prev }()

	config.AppConfig.JWTSecret = ""
	if _, err := GenerateToken("ana", time.Hour); !errors.Is(err, ErrAuthDisabled) {
		t.Errorf("GenerateToken without secret: %v", err)
	}

	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateToken("ana", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	sub, err := ExtractSubject(token)
	if err != nil || sub != "ana" {
		t.Errorf("ExtractSubject = %q, %v", sub, err)
	}

	expired, _ := GenerateToken("ana", -time.Minute)
	if _, err := ExtractSubject(expired); err == nil {
		t.Error("expired token accepted")
	}

	config.AppConfig.JWTSecret = "other-secret"
	if _, err := ExtractSubject(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestCheckHealth(t *testing.T) {
	status := CheckHealth(context.Background(), fakePinger{}, nil)
	if !status.Upstream || status.Redis != nil || !status.Healthy() {
		t.Errorf("status = %+v", status)
	}
	if got := GetHealthStatus(); !got.Upstream {
		t.Errorf("snapshot not stored: %+v", got)
	}

	status = CheckHealth(context.Background(), fakePinger{err: errors.New("down")}, nil)
	if status.Upstream || status.Healthy() {
		t.Errorf("status = %+v", status)
	}
}
