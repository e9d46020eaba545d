package database

import (
	"context"
	"fmt"

	"islandproperties-backend/internal/models"
)

func ptr[T any](v T) *T { return &v }

func unsplash(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"
}

func avatar(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?ixlib=rb-4.0.3&auto=format&fit=crop&w=64&h=64"
}

// SeedSampleData fills an empty store with demo listings, testimonials and
// FAQs. It does nothing when any property already exists.
func SeedSampleData(ctx context.Context, store Store) error {
	existing, err := store.ListProperties(ctx, models.PropertyFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range sampleProperties() {
		if err := store.CreateProperty(ctx, p); err != nil {
			return fmt.Errorf("seed property %q: %w", p.Title, err)
		}
	}
	for _, t := range sampleTestimonials() {
		if err := store.CreateTestimonial(ctx, t); err != nil {
			return fmt.Errorf("seed testimonial %q: %w", t.Name, err)
		}
	}
	for _, f := range sampleFAQs() {
		if err := store.CreateFAQ(ctx, f); err != nil {
			return fmt.Errorf("seed faq %q: %w", f.Question, err)
		}
	}
	return nil
}

func sampleProperties() []*models.Property {
	return []*models.Property{
		{
			Title:               "Private White Sand Beachfront Resort",
			Price:               "50000000",
			PricePerSqm:         ptr("₱10,000"),
			Location:            "Anda, Bohol",
			Category:            models.CategoryBeach,
			Description:         "Exceptional beachfront resort property with pristine white sand beach.",
			DetailedDescription: ptr("Beachfront resort with 150 meters of white sand beach, 5 native cottages, a main house and resort operating permits."),
			Features:            []string{"Swimming", "Snorkeling", "Kayaking", "Beach volleyball"},
			Images:              []string{unsplash("1613490493576-7fde63acd811"), unsplash("1507525428034-b723cf961d3e")},
			ContactInfo:         &models.ContactInfo{Phone: "+63 917 456 7890", Email: "carlos@islandproperties.ph"},
			BrokerName:          "Carlos Mendoza",
			BrokerPhone:         "+63 917 456 7890",
			BrokerEmail:         "carlos@islandproperties.ph",
			TitleType:           ptr("Clean Title"),
			IsHot:               true,
			CategoryData: models.BeachDetails{
				BeachfrontMeters:     ptr(150.0),
				LandSizeSqm:          ptr(5000.0),
				BeachType:            "Pristine White Sand",
				WaterDepth:           "Gradual slope, safe for swimming",
				AccessRoad:           "Concrete road to property",
				ExistingStructures:   "5 native cottages, main house",
				EnvironmentalPermits: "DOT accredited, all permits current",
				BeachActivities:      []string{"Swimming", "Snorkeling", "Kayaking"},
				DivingSpots:          "House reef",
			},
		},
		{
			Title:               "Modern 4-Bedroom Villa with Pool",
			Price:               "25000000",
			PricePerSqm:         ptr("₱35,000"),
			Location:            "Tagbilaran Heights, Bohol",
			Category:            models.CategoryHouses,
			Bedrooms:            ptr(4),
			Bathrooms:           ptr(3),
			SquareFeet:          ptr(350),
			YearBuilt:           ptr(2020),
			PropertyType:        ptr("Single Detached"),
			Description:         "Modern villa with contemporary design and resort-style amenities.",
			DetailedDescription: ptr("Modern family villa with a swimming pool, landscaped gardens and premium finishes throughout."),
			Features:            []string{"CCTV", "Alarm System", "24/7 Security", "Central AC"},
			Images:              []string{unsplash("1600596542815-ffad4c1539a9"), unsplash("1568605114967-8130f3a36994")},
			ContactInfo:         &models.ContactInfo{Phone: "+63 917 123 4567", Email: "maria@islandproperties.ph"},
			BrokerName:          "Maria Santos",
			BrokerPhone:         "+63 917 123 4567",
			BrokerEmail:         "maria@islandproperties.ph",
			TitleType:           ptr("Clean Title"),
			IsHot:               true,
			CategoryData: models.HouseDetails{
				LotSizeSqm:       ptr(800.0),
				ParkingSpaces:    ptr(2),
				Stories:          ptr(2),
				KitchenType:      "Modern European Style",
				Flooring:         "Italian Marble & Hardwood",
				AirConditioning:  "Central AC",
				SecurityFeatures: []string{"CCTV", "Alarm System", "24/7 Security"},
				OutdoorSpace:     "Landscaped Garden with Pool",
				SwimmingPool:     true,
				PropertyTax:      "₱45,000/year",
				HOAFees:          "None",
			},
		},
		{
			Title:               "Luxury 2BR Oceanview Penthouse",
			Price:               "15000000",
			Location:            "Seaside Towers, Tagbilaran City",
			Category:            models.CategoryCondos,
			Bedrooms:            ptr(2),
			Bathrooms:           ptr(2),
			SquareFeet:          ptr(120),
			Description:         "Penthouse unit with panoramic ocean and city views.",
			DetailedDescription: ptr("25th floor penthouse, semi-furnished with high-end appliances and access to the building amenities."),
			Features:            []string{"Infinity Pool", "Gym", "Spa", "Rooftop Garden"},
			Images:              []string{unsplash("1545324418-cc1a3fa10c00"), unsplash("1560448204-e02f11c3d0e2")},
			ContactInfo:         &models.ContactInfo{Phone: "+63 917 345 6789", Email: "lisa@islandproperties.ph"},
			BrokerName:          "Lisa Fernandez",
			BrokerPhone:         "+63 917 345 6789",
			BrokerEmail:         "lisa@islandproperties.ph",
			TitleType:           ptr("Condominium Certificate of Title"),
			IsFeatured:          true,
			CategoryData: models.CondoDetails{
				FloorLevel:        "25th Floor",
				BuildingName:      "Seaside Towers",
				ParkingSlots:      ptr(2),
				AssociationDues:   "₱8,000/month",
				BuildingAmenities: []string{"Infinity Pool", "Gym", "Spa", "Rooftop Garden"},
				Security:          "24/7 Security, CCTV, Card Access",
				ViewType:          "Ocean and City View",
				FurnishedStatus:   "Semi-furnished",
				PetPolicy:         "Small pets allowed",
			},
		},
		{
			Title:               "Productive Coconut Plantation with Processing",
			Price:               "12000000",
			PricePerSqm:         ptr("₱1,200,000"),
			Location:            "Carmen, Bohol",
			Category:            models.CategoryAgriculture,
			Description:         "Operational coconut plantation with processing facilities.",
			DetailedDescription: ptr("10-hectare plantation with 500+ mature coconut trees, processing facilities and organic certification."),
			Features:            []string{"Copra dryer", "Processing equipment", "Farm tools", "Storage warehouses"},
			Images:              []string{unsplash("1500382017468-9049fed747ef"), unsplash("1574323347407-f5e1ad6d020b")},
			ContactInfo:         &models.ContactInfo{Phone: "+63 917 678 9012", Email: "ricardo@islandproperties.ph"},
			BrokerName:          "Ricardo Villanueva",
			BrokerPhone:         "+63 917 678 9012",
			BrokerEmail:         "ricardo@islandproperties.ph",
			TitleType:           ptr("Agricultural Free Patent"),
			IsFeatured:          true,
			CategoryData: models.AgricultureDetails{
				LandSizeHectares:     ptr(10.0),
				SoilType:             "Rich alluvial soil, excellent drainage",
				CurrentCrops:         "Mature coconut trees (500+ trees)",
				IrrigationSystem:     "Natural spring + irrigation channels",
				EquipmentIncluded:    []string{"Copra dryer", "Processing equipment", "Farm tools"},
				HarvestHistory:       "Consistent 15,000 nuts/month average",
				OrganicCertification: "Organic certified by OCCP",
				WaterSource:          "Natural spring, year-round flow",
			},
		},
		{
			Title:               "Prime Commercial Building - City Center",
			Price:               "35000000",
			Location:            "CPG Avenue, Tagbilaran City",
			Category:            models.CategoryCommercial,
			SquareFeet:          ptr(800),
			Description:         "Investment property in the heart of the business district.",
			DetailedDescription: ptr("Corner commercial building with mixed-use spaces and established tenants."),
			Features:            []string{"Restaurant", "Retail shops", "Office spaces", "High foot traffic"},
			Images:              []string{unsplash("1486406146926-c627a92ad1ab"), unsplash("1555774698-0b77e0d5fac6")},
			ContactInfo:         &models.ContactInfo{Phone: "+63 917 567 8901", Email: "elena@islandproperties.ph"},
			BrokerName:          "Elena Rodriguez",
			BrokerPhone:         "+63 917 567 8901",
			BrokerEmail:         "elena@islandproperties.ph",
			TitleType:           ptr("Clean Title"),
			IsFeatured:          true,
			CategoryData: models.CommercialDetails{
				BuildingSizeSqm: ptr(800.0),
				LotSizeSqm:      ptr(400.0),
				CommercialType:  "Mixed-use Commercial Building",
				Zoning:          "Commercial Business District",
				ParkingSpaces:   ptr(10),
				CurrentIncome:   "₱180,000/month",
				CurrentTenants:  []string{"Restaurant", "Retail shops", "Office spaces"},
				LeaseTerms:      "Various terms, 3-10 years",
			},
		},
		{
			Title:               "Prime Residential Development Land",
			Price:               "8000000",
			PricePerSqm:         ptr("₱4,000"),
			Location:            "Panglao Island, Bohol",
			Category:            models.CategoryLand,
			Description:         "Development opportunity on Panglao Island.",
			DetailedDescription: ptr("2,000 sqm of development land suited to a residential subdivision or resort, with road access and utilities."),
			Features:            []string{"Deep well available", "Fiber optic available", "6-meter concrete road"},
			Images:              []string{unsplash("1500076656116-558758c991c1"), unsplash("1441974231531-c6227db76b6e")},
			ContactInfo:         &models.ContactInfo{Phone: "+63 917 234 5678", Email: "roberto@islandproperties.ph"},
			BrokerName:          "Roberto Cruz",
			BrokerPhone:         "+63 917 234 5678",
			BrokerEmail:         "roberto@islandproperties.ph",
			TitleType:           ptr("Clean Title"),
			IsFeatured:          true,
			CategoryData: models.LandDetails{
				TotalAreaSqm:           ptr(2000.0),
				TotalAreaHectares:      ptr(0.2),
				LandClassification:     "Residential",
				Topography:             "Gently Sloping",
				RoadAccess:             "6-meter concrete road",
				Zoning:                 "Residential, R1 Classification",
				FloodHistory:           "No flood history",
				Restrictions:           "40% lot coverage maximum",
				EnvironmentalClearance: "ECC obtained",
			},
		},
	}
}

func sampleTestimonials() []*models.Testimonial {
	return []*models.Testimonial{
		{
			Name:   "Sarah Johnson",
			Title:  "Property Investor",
			Quote:  "Island Properties helped me find the perfect beachfront investment.",
			Avatar: avatar("1494790108755-2616b612b786"),
			Rating: 5,
		},
		{
			Name:   "Michael Chen",
			Title:  "Business Owner",
			Quote:  "They found us the ideal commercial space for our expanding business.",
			Avatar: avatar("1472099645785-5658abf4ff4e"),
			Rating: 5,
		},
		{
			Name:   "Emma Rodriguez",
			Title:  "First-Time Buyer",
			Quote:  "The team made my first purchase smooth and stress-free.",
			Avatar: avatar("1580489944761-15a19d654956"),
			Rating: 5,
		},
	}
}

func sampleFAQs() []*models.FAQ {
	return []*models.FAQ{
		{
			Question: "Can foreigners buy property in the Philippines?",
			Answer:   "Foreign nationals can own condominium units up to 40% of a project. Land ownership is limited to Filipino citizens and qualifying corporations.",
			Category: "buying",
			Order:    1,
			IsActive: true,
		},
		{
			Question: "What does a clean title mean?",
			Answer:   "The title is registered, free of liens and encumbrances, and matches the records of the Registry of Deeds.",
			Category: "legal",
			Order:    2,
			IsActive: true,
		},
		{
			Question: "How do I schedule a viewing?",
			Answer:   "Contact the broker listed on the property page by phone or email.",
			Category: "general",
			Order:    3,
			IsActive: true,
		},
	}
}
