package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
	"github.com/rs/zerolog/log"
)

const localTTL = 5 * time.Minute

// CacheRepository define la interfaz para el caché de lecturas públicas
// (catálogo de amenities, detalle de propiedades). Los valores se guardan en JSON.
type CacheRepository interface {
	Get(key string, out interface{}) bool
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
}

// cacheRepository implementa CacheRepository con dos niveles:
// ccache en memoria (L1) y Memcached compartido entre instancias (L2, opcional).
type cacheRepository struct {
	localCache      *ccache.Cache[[]byte]
	memcachedClient *memcache.Client
}

// NewCacheRepository crea el caché; con memcachedHost vacío solo se usa el nivel local
func NewCacheRepository(memcachedHost string) CacheRepository {
	localCache := ccache.New(ccache.Configure[[]byte]().MaxSize(1000))

	var memcachedClient *memcache.Client
	if memcachedHost != "" {
		memcachedClient = memcache.New(memcachedHost)
		log.Info().Str("host", memcachedHost).Msg("Cache repository initialized with Memcached")
	} else {
		log.Info().Msg("Cache repository initialized (local only)")
	}

	return &cacheRepository{
		localCache:      localCache,
		memcachedClient: memcachedClient,
	}
}

// Get busca primero en local y después en Memcached; decodifica en out
func (r *cacheRepository) Get(key string, out interface{}) bool {
	// 1. Buscar en caché local primero
	item := r.localCache.Get(key)
	if item != nil && !item.Expired() {
		if err := json.Unmarshal(item.Value(), out); err == nil {
			log.Debug().Str("key", key).Msg("Cache HIT (local)")
			return true
		}
		r.localCache.Delete(key)
	}

	if r.memcachedClient == nil {
		log.Debug().Str("key", key).Msg("Cache MISS")
		return false
	}

	// 2. Si no está en local, buscar en Memcached
	memcachedItem, err := r.memcachedClient.Get(key)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("Error getting from Memcached")
		}
		log.Debug().Str("key", key).Msg("Cache MISS")
		return false
	}

	// 3. Parsear datos de Memcached
	if err := json.Unmarshal(memcachedItem.Value, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Error unmarshaling cache data from Memcached")
		return false
	}

	// 4. Guardar en caché local para próximas consultas
	r.localCache.Set(key, memcachedItem.Value, localTTL)
	log.Debug().Str("key", key).Msg("Cache HIT (Memcached), stored in local cache")
	return true
}

// Set guarda en ambos niveles; el local nunca vive más de 5 minutos
func (r *cacheRepository) Set(key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Error marshaling cache data")
		return
	}

	local := ttl
	if local <= 0 || local > localTTL {
		local = localTTL
	}
	r.localCache.Set(key, data, local)

	if r.memcachedClient == nil {
		return
	}

	// Memcached usa segundos
	if err := r.memcachedClient.Set(&memcache.Item{
		Key:        key,
		Value:      data,
		Expiration: int32(ttl / time.Second),
	}); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Error setting cache in Memcached")
		return
	}
	log.Debug().Str("key", key).Dur("ttl", ttl).Msg("Cache SET")
}

// Delete elimina de ambos niveles
func (r *cacheRepository) Delete(key string) {
	r.localCache.Delete(key)

	if r.memcachedClient == nil {
		return
	}
	if err := r.memcachedClient.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		log.Warn().Err(err).Str("key", key).Msg("Error deleting from Memcached")
		return
	}
	log.Debug().Str("key", key).Msg("Cache DELETE")
}
