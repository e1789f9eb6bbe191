package natsadapter

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

// ContentType is set on every published message.
const ContentType = "application/x-protobuf; messageType=google.protobuf.Struct"

func resultFields(r *domain.EquilibriumResult) map[string]any {
	return map[string]any{
		"component1": string(r.Component1),
		"component2": string(r.Component2),
		"t_v":        r.TV,
		"x1":         r.X1,
		"x2":         r.X2,
		"p_sat1":     r.PSat1,
		"p_sat2":     r.PSat2,
		"p_min":      r.PMin,
		"p_max":      r.PMax,
		"p_vap":      r.PVap,
		"y1":         r.Y1,
		"y2":         r.Y2,
		"iterations": r.Iterations,
	}
}

// EncodeResult serialises r as a protobuf Struct.
func EncodeResult(r *domain.EquilibriumResult) ([]byte, error) {
	s, err := structpb.NewStruct(resultFields(r))
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return proto.Marshal(s)
}

// DecodeResult parses a payload produced by EncodeResult.
func DecodeResult(data []byte) (*domain.EquilibriumResult, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	f := s.GetFields()
	return &domain.EquilibriumResult{
		Component1: domain.ComponentID(f["component1"].GetStringValue()),
		Component2: domain.ComponentID(f["component2"].GetStringValue()),
		TV:         f["t_v"].GetNumberValue(),
		X1:         f["x1"].GetNumberValue(),
		X2:         f["x2"].GetNumberValue(),
		PSat1:      f["p_sat1"].GetNumberValue(),
		PSat2:      f["p_sat2"].GetNumberValue(),
		PMin:       f["p_min"].GetNumberValue(),
		PMax:       f["p_max"].GetNumberValue(),
		PVap:       f["p_vap"].GetNumberValue(),
		Y1:         f["y1"].GetNumberValue(),
		Y2:         f["y2"].GetNumberValue(),
		Iterations: int(f["iterations"].GetNumberValue()),
	}, nil
}

// EncodeIsotherm serialises iso as a protobuf Struct with a points list.
func EncodeIsotherm(iso *domain.Isotherm) ([]byte, error) {
	points := make([]any, 0, len(iso.Points))
	for _, p := range iso.Points {
		points = append(points, map[string]any{
			"x1":    p.X1,
			"y1":    p.Y1,
			"p_min": p.PMin,
			"p_max": p.PMax,
			"p_vap": p.PVap,
		})
	}
	s, err := structpb.NewStruct(map[string]any{
		"component1": string(iso.Component1),
		"component2": string(iso.Component2),
		"t_v":        iso.Temperature,
		"p_sat1":     iso.PSat1,
		"p_sat2":     iso.PSat2,
		"points":     points,
	})
	if err != nil {
		return nil, fmt.Errorf("encode isotherm: %w", err)
	}
	return proto.Marshal(s)
}

// DecodeIsotherm parses a payload produced by EncodeIsotherm.
func DecodeIsotherm(data []byte) (*domain.Isotherm, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode isotherm: %w", err)
	}
	f := s.GetFields()
	iso := &domain.Isotherm{
		Component1:  domain.ComponentID(f["component1"].GetStringValue()),
		Component2:  domain.ComponentID(f["component2"].GetStringValue()),
		Temperature: f["t_v"].GetNumberValue(),
		PSat1:       f["p_sat1"].GetNumberValue(),
		PSat2:       f["p_sat2"].GetNumberValue(),
	}
	for _, v := range f["points"].GetListValue().GetValues() {
		pf := v.GetStructValue().GetFields()
		iso.Points = append(iso.Points, domain.IsothermPoint{
			X1:   pf["x1"].GetNumberValue(),
			Y1:   pf["y1"].GetNumberValue(),
			PMin: pf["p_min"].GetNumberValue(),
			PMax: pf["p_max"].GetNumberValue(),
			PVap: pf["p_vap"].GetNumberValue(),
		})
	}
	return iso, nil
}
