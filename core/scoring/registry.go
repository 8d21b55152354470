package scoring

import (
	"context"
	"fmt"

	"scorebook/core/errs"
	"scorebook/core/schema"
	"scorebook/core/store"
	"scorebook/core/upsert"
	"scorebook/core/utils"

	"go.uber.org/zap"
)

// Registry holds the installed sport plugins and keeps the sports and
// score_formats tables in line with them. Plugins register during startup;
// after that the registry is read-only and safe for concurrent lookups.
type Registry struct {
	store   store.Store
	engine  *upsert.Engine
	log     *zap.Logger
	plugins map[string]Plugin
	order   []string
}

// NewRegistry creates an empty plugin registry.
func NewRegistry(s store.Store, e *upsert.Engine, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		store:   s,
		engine:  e,
		log:     log,
		plugins: map[string]Plugin{},
	}
}

// Register installs a plugin. Registering two plugins under one sport name
// is a wiring mistake and fails loudly.
func (r *Registry) Register(p Plugin) error {
	if _, exists := r.plugins[p.Name()]; exists {
		return errs.Conflict("plugins", "name", p.Name())
	}
	r.plugins[p.Name()] = p
	r.order = append(r.order, p.Name())
	return nil
}

// Plugin returns the plugin registered under the sport name.
func (r *Registry) Plugin(name string) (Plugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}

// Plugins lists the installed plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	out := make([]Plugin, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.plugins[name])
	}
	return out
}

// Method returns the named method of the named sport.
func (r *Registry) Method(sportName, methodName string) (Method, bool) {
	p, ok := r.plugins[sportName]
	if !ok {
		return nil, false
	}
	for _, m := range p.Methods() {
		if m.Name() == methodName {
			return m, true
		}
	}
	return nil, false
}

// EnsureScoreFormats makes the database reflect a plugin: the sport row
// exists under the plugin's name, and every scoring method has exactly one
// score_formats row scoped to that sport. The call is idempotent, and a
// generic (sport-less) format with a method's name is promoted to the sport
// rather than duplicated. Returns the sport's id.
func (r *Registry) EnsureScoreFormats(ctx context.Context, p Plugin) (string, error) {
	sport, err := r.engine.Upsert(ctx, schema.TableSports,
		store.Row{"name": p.Name()},
		store.NewQuery().Eq("name", p.Name()))
	if err != nil {
		return "", fmt.Errorf("ensure sport %s: %w", p.Name(), err)
	}

	for _, m := range p.Methods() {
		_, err := r.store.SelectOne(ctx, schema.TableScoreFormats,
			store.NewQuery().Eq("name", m.Name()).Eq("sport_id", sport.ID))
		if err == nil {
			continue // already sport-scoped
		}
		if !errs.IsNotFound(err) {
			return "", err
		}

		res, err := r.engine.Upsert(ctx, schema.TableScoreFormats,
			store.Row{"name": m.Name(), "sport_id": sport.ID},
			store.NewQuery().Eq("name", m.Name()).Eq("sport_id", nil))
		if err != nil {
			return "", fmt.Errorf("ensure score format %s: %w", m.Name(), err)
		}
		if res.Outcome == upsert.Updated {
			r.log.Info("Promoted generic score format to sport",
				zap.String("format", m.Name()), zap.String("sport", p.Name()))
		}
	}

	return sport.ID, nil
}

// MethodForScoreFormat resolves a score_formats row to its registered
// method: through the row's sport when it has one, otherwise through the
// first plugin carrying a method of that name.
func (r *Registry) MethodForScoreFormat(ctx context.Context, scoreFormatID string) (Method, error) {
	format, err := r.store.SelectOne(ctx, schema.TableScoreFormats, store.ByID(scoreFormatID))
	if err != nil {
		return nil, err
	}
	methodName := utils.ToString(format["name"])

	if sportID := utils.ToString(format["sport_id"]); sportID != "" {
		sportRow, err := r.store.SelectOne(ctx, schema.TableSports, store.ByID(sportID))
		if err != nil {
			return nil, err
		}
		if m, ok := r.Method(utils.ToString(sportRow["name"]), methodName); ok {
			return m, nil
		}
	}

	for _, name := range r.order {
		if m, ok := r.Method(name, methodName); ok {
			return m, nil
		}
	}
	return nil, errs.NotFound("scoring methods", methodName)
}
