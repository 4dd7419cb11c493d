package service

import (
	"context"
	"time"

	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/metrics"
	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/upstream"
	"github.com/go-playground/validator/v10"
)

// LocationService is the single access point for "where am I" questions.
// It hides the IP echo and IP metadata providers behind typed accessors
// and degrades to absent values when the metadata provider is unavailable.
type LocationService struct {
	fetcher   MetadataFetcher
	resolver  SelfIPResolver
	validator *validator.Validate
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewLocationService creates the location service.
//
// Parameters:
//   - fetcher: metadata provider (ipinfo in production)
//   - resolver: IP echo provider (ipify in production)
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewLocationService(fetcher MetadataFetcher, resolver SelfIPResolver, m *metrics.Metrics, log *logger.Logger) *LocationService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &LocationService{
		fetcher:   fetcher,
		resolver:  resolver,
		validator: validator.New(),
		metrics:   m,
		logger:    log.WithComponent("LocationService"),
	}
}

// Lookup fetches metadata once.
//
// Transport and HTTP status failures are logged and turned into a degraded
// Lookup whose accessors all report absent values. Any other failure (an
// unparsable body, a cancelled context) is kept in Err with Degraded false.
func (s *LocationService) Lookup(ctx context.Context) Lookup {
	start := time.Now()
	metadata, err := s.fetcher.Fetch(ctx)
	observeUpstream(s.metrics, upstream.ProviderIPInfo, start, err)

	if err != nil {
		if upstream.IsUnavailable(err) {
			s.logger.Warn().Err(err).Msg("IP metadata unavailable, continuing without it")
			if s.metrics != nil {
				s.metrics.LookupsDegraded.Inc()
				s.metrics.LookupsTotal.WithLabelValues("degraded").Inc()
			}
			return Lookup{err: err, degraded: true}
		}

		s.logger.Error().Err(err).Msg("IP metadata lookup failed")
		if s.metrics != nil {
			s.metrics.LookupsTotal.WithLabelValues("error").Inc()
		}
		return Lookup{err: err}
	}

	if metadata == nil {
		metadata = &models.IPMetadata{}
	}

	s.logger.Debug().
		Bool("has_city", metadata.City != nil).
		Bool("has_loc", metadata.Loc != nil).
		Msg("IP metadata lookup successful")
	if s.metrics != nil {
		s.metrics.LookupsTotal.WithLabelValues("success").Inc()
	}

	return Lookup{metadata: metadata}
}

// The per-field accessors below each perform their own Lookup, so calling
// several of them costs one upstream request apiece. Use Lookup directly
// when more than one field is needed.

func (s *LocationService) City(ctx context.Context) (string, bool) {
	return s.Lookup(ctx).City()
}

func (s *LocationService) Region(ctx context.Context) (string, bool) {
	return s.Lookup(ctx).Region()
}

func (s *LocationService) Country(ctx context.Context) (string, bool) {
	return s.Lookup(ctx).Country()
}

func (s *LocationService) Coordinates(ctx context.Context) (string, bool) {
	return s.Lookup(ctx).Coordinates()
}

func (s *LocationService) Organization(ctx context.Context) (string, bool) {
	return s.Lookup(ctx).Organization()
}

func (s *LocationService) Postal(ctx context.Context) (string, bool) {
	return s.Lookup(ctx).Postal()
}

// SelfIP resolves the public address. Valid is informational: the resolver
// only strips foreign characters and never checks octets.
func (s *LocationService) SelfIP(ctx context.Context) (*models.SelfIPResponse, error) {
	start := time.Now()
	ip, err := s.resolver.ResolveSelfIP(ctx)
	observeUpstream(s.metrics, upstream.ProviderIPify, start, err)

	if err != nil {
		s.logger.Warn().Err(err).Msg("Cannot resolve public IP address")
		return nil, err
	}

	valid := s.validator.Var(ip, "required,ipv4") == nil
	if !valid {
		s.logger.Warn().Str("ip", ip).Msg("Resolved address is not a well-formed IPv4 address")
	}

	return &models.SelfIPResponse{IP: ip, Valid: valid}, nil
}
