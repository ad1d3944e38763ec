package services

import (
	"fleetportal-backend/models"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedItem struct {
	code          string
	title         string
	description   string
	requiresPhoto bool
}

type seedCategory struct {
	code        string
	name        string
	description string
	items       []seedItem
}

var checklistFixture = []seedCategory{
	{
		code:        "pre_trip_documentation",
		name:        "Pre-Trip Documentation",
		description: "Capture identifiers, readings, and baseline condition before inspection starts.",
		items: []seedItem{
			{"vin_label", "VIN label verified", "Confirm VIN matches paperwork and tag.", false},
			{"plate_match", "License plate recorded", "Record plate and verify registration.", false},
			{"odo_capture", "Odometer reading captured", "Enter dash odometer and engine hours.", false},
			{"baseline_photos", "Baseline condition photos", "Panoramic photos showing exterior condition.", true},
		},
	},
	{
		code:        "exterior_structure",
		name:        "Exterior & Structure",
		description: "Walk-around inspection of body, frame, and exterior components.",
		items: []seedItem{
			{"body_panels", "Body panels condition", "Dents, cracks, corrosion, loose panels.", true},
			{"frame_rails", "Frame rails & crossmembers", "Inspect for damage, rust, or deformation.", true},
			{"glass_mirrors", "Glass and mirrors", "Windshield, side glass, mirrors free of cracks.", false},
			{"bumpers_mounts", "Bumpers & mounts", "Securely mounted, no sharp edges.", false},
		},
	},
	{
		code:        "tires_wheels_axles",
		name:        "Tires, Wheels, & Axles",
		description: "Tire health, wheel hardware, hubs, and axle integrity.",
		items: []seedItem{
			{"tire_pressure", "Tire pressure", "Record PSI for each position.", false},
			{"tread_depth", "Tread depth", "Measure depth and irregular wear.", false},
			{"wheel_hardware", "Wheel hardware", "Rims, lugs, indicators secure and intact.", true},
			{"hubs_seals", "Hubs & seals", "Check for leaks or overheating.", true},
		},
	},
	{
		code:        "braking_system",
		name:        "Braking System",
		description: "Service, emergency, and parking brake components.",
		items: []seedItem{
			{"pads_rotors", "Pads/shoes & rotors/drums", "Thickness, glazing, heat checking.", true},
			{"hyd_air_lines", "Hydraulic/air lines", "Leaks, chafing, routing, fittings.", true},
			{"reservoirs_valves", "Reservoirs & valves", "Proper level, leaks, secure mounts.", false},
			{"parking_brake", "Parking brake hold", "Application strength and response.", false},
		},
	},
	{
		code:        "suspension_steering",
		name:        "Suspension & Steering",
		description: "Ride stability and steering precision components.",
		items: []seedItem{
			{"springs_shocks", "Springs & shocks/air bags", "Leaks, cracks, uneven height.", true},
			{"steering_linkage", "Steering linkage", "Tie rods, drag links, kingpins free play.", true},
			{"bushings_mounts", "Bushings & mounts", "Wear, looseness, damaged hardware.", false},
			{"alignment", "Alignment indicators", "Wheel centering and tracking.", false},
		},
	},
	{
		code:        "engine_powertrain",
		name:        "Engine & Powertrain",
		description: "Fluids, belts/hoses, exhaust, and drivetrain.",
		items: []seedItem{
			{"fluid_levels", "Fluid levels", "Oil, coolant, transmission, DEF, hydraulics.", false},
			{"belts_hoses", "Belts & hoses", "Cracks, frays, clamps and filters.", true},
			{"exhaust_system", "Exhaust system", "Routing, mounts, leaks, soot trails.", true},
			{"drivetrain", "Drivetrain & seals", "Leaks, noise, damaged housings.", true},
		},
	},
	{
		code:        "electrical_lighting",
		name:        "Electrical & Lighting",
		description: "Lighting circuits and electrical components.",
		items: []seedItem{
			{"exterior_lights", "Exterior lighting", "Head/tail/marker/brake lights functional.", false},
			{"signals_hazards", "Signals & hazards", "Turn signals and hazards synchronized.", false},
			{"interior_gauges", "Interior & gauges", "Dash indicators and chimes.", false},
			{"battery_wiring", "Battery & wiring", "Corrosion, damage, loose terminals.", true},
		},
	},
	{
		code:        "cabin_interior",
		name:        "Cabin & Interior",
		description: "Occupant safety, visibility, and controls.",
		items: []seedItem{
			{"restraints", "Seat belts & restraints", "Secure, undamaged, functional.", false},
			{"visibility", "Visibility systems", "Mirrors, windshield, wipers/washers.", false},
			{"controls_hvac", "Controls & HVAC", "Switches, gauges, infotainment.", false},
			{"emergency_gear", "Emergency equipment", "Logbooks, permits, safety signage.", false},
		},
	},
	{
		code:        "coupling_connections",
		name:        "Coupling & Connections",
		description: "Trailer coupling devices and service lines.",
		items: []seedItem{
			{"locking_components", "Locking components", "Fifth wheel/kingpin/pintle secure.", true},
			{"safety_devices", "Safety chains & pins", "Present and undamaged.", false},
			{"service_lines", "Electrical & air lines", "No leaks, abrasion, or misalignment.", true},
		},
	},
	{
		code:        "safety_equipment",
		name:        "Safety Equipment",
		description: "Emergency preparedness and compliance items.",
		items: []seedItem{
			{"extinguisher", "Fire extinguisher", "Charge status and inspection tag.", false},
			{"triangles", "Warning triangles/flares", "Present and serviceable.", false},
			{"first_aid_ppe", "First-aid & PPE", "Stocked and accessible.", false},
		},
	},
	{
		code:        "operational_tests",
		name:        "Operational Tests",
		description: "Dynamic checks prior to releasing the vehicle.",
		items: []seedItem{
			{"brake_test", "Brake responsiveness", "Stopping distance and pedal feel.", false},
			{"steering_check", "Steering operation", "Lock-to-lock, no binding/noise.", false},
			{"engine_start", "Engine start & idle", "Idle quality and warning lights.", false},
			{"transmission_test", "Transmission shifting", "Smooth engagement in all ranges.", false},
		},
	},
}

// SeedChecklistStructure ensures the inspection checklist reference data
// exists. Safe to run on every boot: existing categories and items are left
// untouched, missing ones are created.
func SeedChecklistStructure(db *gorm.DB, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	for order, fixture := range checklistFixture {
		var category models.InspectionCategory
		err := db.Where("code = ?", fixture.code).First(&category).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(err)
			}
			category = models.InspectionCategory{
				Code:         fixture.code,
				Name:         fixture.name,
				Description:  fixture.description,
				DisplayOrder: order + 1,
			}
			if err := db.Create(&category).Error; err != nil {
				return errors.WithStack(err)
			}
			log.Info("seeded inspection category", zap.String("code", category.Code))
		}

		for _, item := range fixture.items {
			var existing models.ChecklistItem
			err := db.Where("code = ?", item.code).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(err)
			}
			record := models.ChecklistItem{
				CategoryID:    category.ID,
				Code:          item.code,
				Title:         item.title,
				Description:   item.description,
				RequiresPhoto: item.requiresPhoto,
				IsActive:      true,
			}
			if err := db.Create(&record).Error; err != nil {
				return errors.WithStack(err)
			}
		}
	}
	return nil
}
