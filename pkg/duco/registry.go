package duco

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Registry polls the board and holds the latest document snapshot. Exactly
// one refresh is in flight at a time; the snapshot is replaced wholesale and
// never mutated, so readers can keep using the Document they were handed.
type Registry interface {
	// Start performs the initial refresh and begins the polling loop.
	Start() error

	// Stop ends the polling loop.
	Stop() error

	// Document returns the current snapshot.
	Document() Document

	// Refresh fetches all endpoints into a new snapshot and notifies
	// subscribers. Callers that just wrote a value use this to reconcile.
	Refresh() error

	// Subscribe registers a callback invoked with every new snapshot. The id
	// allows unsubscribing.
	Subscribe(id string, callback func(Document))
	Unsubscribe(id string)

	// DeviceId returns the stable box identifier derived from the MAC
	// address, or an empty string while the document lacks one.
	DeviceId() string
	// Model returns the readable box model name.
	Model() string
	// SwVersion returns the box firmware version.
	SwVersion() string

	// NodeType resolves a node id to its device type (BOX, UCCO2, ...).
	NodeType(nodeId int) string
	// NodeName resolves a node id to its readable name.
	NodeName(nodeId int) string
}

type registry struct {
	client       Client
	pollInterval time.Duration

	document   Document
	nodeTypes  map[int]string
	nodeNames  map[int]string
	staticData Document

	subscribers map[string]func(Document)

	refreshMutex sync.Mutex
	lookupMutex  sync.RWMutex

	ticker     *time.Ticker
	tickerDone chan struct{}
}

// NewRegistry creates a registry polling the given client at the given
// interval.
func NewRegistry(client Client, pollInterval time.Duration) Registry {
	return &registry{
		client:       client,
		pollInterval: pollInterval,
		document:     Document{},
		nodeTypes:    map[int]string{},
		nodeNames:    map[int]string{},
		subscribers:  map[string]func(Document){},
	}
}

func (r *registry) Start() error {
	// Action lists are static per firmware; fetch them once.
	if err := r.fetchStaticData(); err != nil {
		return fmt.Errorf("error fetching action lists: %w", err)
	}
	if err := r.Refresh(); err != nil {
		return fmt.Errorf("error on initial refresh: %w", err)
	}

	r.ticker = time.NewTicker(r.pollInterval)
	r.tickerDone = make(chan struct{})
	go func() {
		for {
			select {
			case <-r.tickerDone:
				return
			case <-r.ticker.C:
				if err := r.Refresh(); err != nil {
					log.Error().Err(err).Msg("Error refreshing the device document.")
				}
			}
		}
	}()
	return nil
}

func (r *registry) Stop() error {
	if r.ticker != nil {
		r.ticker.Stop()
		r.tickerDone <- struct{}{}
		r.ticker = nil
	}
	return nil
}

func (r *registry) fetchStaticData() error {
	actions, err := r.client.GetActions()
	if err != nil {
		return err
	}
	actionNodes, err := r.client.GetActionNodes()
	if err != nil {
		return err
	}
	r.staticData = Document{
		SectionAction:      actions,
		SectionActionNodes: actionNodes,
	}
	return nil
}

func (r *registry) Refresh() error {
	refreshesTotal.Inc()
	timer := prometheus.NewTimer(refreshDuration)
	defer timer.ObserveDuration()

	if err := r.refresh(); err != nil {
		refreshErrorsTotal.Inc()
		return err
	}
	return nil
}

func (r *registry) refresh() error {
	r.refreshMutex.Lock()
	defer r.refreshMutex.Unlock()

	log.Debug().Msg("Refreshing the device document.")

	info, err := r.client.GetInfo()
	if err != nil {
		return fmt.Errorf("error fetching /info: %w", err)
	}
	nodes, err := r.client.GetNodes()
	if err != nil {
		return fmt.Errorf("error fetching /info/nodes: %w", err)
	}
	config, err := r.client.GetConfig()
	if err != nil {
		return fmt.Errorf("error fetching /config: %w", err)
	}
	configNodes, err := r.client.GetConfigNodes()
	if err != nil {
		return fmt.Errorf("error fetching /config/nodes: %w", err)
	}

	// Assemble a fresh snapshot; the previous one is left untouched for any
	// reader still holding it.
	document := Document{
		SectionInfo:        map[string]interface{}(info),
		SectionNodes:       nodes,
		SectionConfig:      map[string]interface{}(config),
		SectionConfigNodes: configNodes,
		SectionAction:      r.staticData[SectionAction],
		SectionActionNodes: r.staticData[SectionActionNodes],
	}

	nodeTypes := map[int]string{}
	nodeNames := map[int]string{}
	for _, node := range nodes {
		nodeId, ok := toFloat(node["Node"])
		if !ok {
			continue
		}
		id := int(nodeId)
		nodeType, _ := ExtractVal(SafeGet(node, "General", "Type")).(string)
		if nodeType == "" {
			nodeType = "Unknown"
		}
		nodeTypes[id] = nodeType
		nodeNames[id] = fmt.Sprintf("%d:%s", id, nodeType)
	}

	r.lookupMutex.Lock()
	r.document = document
	r.nodeTypes = nodeTypes
	r.nodeNames = nodeNames
	subscribers := make([]func(Document), 0, len(r.subscribers))
	for _, callback := range r.subscribers {
		subscribers = append(subscribers, callback)
	}
	r.lookupMutex.Unlock()

	for _, callback := range subscribers {
		callback(document)
	}
	return nil
}

func (r *registry) Document() Document {
	r.lookupMutex.RLock()
	defer r.lookupMutex.RUnlock()
	return r.document
}

func (r *registry) Subscribe(id string, callback func(Document)) {
	r.lookupMutex.Lock()
	defer r.lookupMutex.Unlock()
	r.subscribers[id] = callback
}

func (r *registry) Unsubscribe(id string) {
	r.lookupMutex.Lock()
	defer r.lookupMutex.Unlock()
	delete(r.subscribers, id)
}

func (r *registry) DeviceId() string {
	mac, _ := ExtractVal(SafeGet(r.Document(), SectionInfo, "General", "Lan", "Mac")).(string)
	if mac == "" {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(mac, ":", ""))
}

func (r *registry) Model() string {
	doc := r.Document()
	boxName, _ := ExtractVal(SafeGet(doc, SectionInfo, "General", "Board", "BoxName")).(string)
	boxSubType, _ := ExtractVal(SafeGet(doc, SectionInfo, "General", "Board", "BoxSubTypeName")).(string)
	model := strings.TrimSpace(boxName + " " + boxSubType)
	return strings.ReplaceAll(model, "_", " ")
}

func (r *registry) SwVersion() string {
	version, _ := ExtractVal(SafeGet(r.Document(), SectionInfo, "General", "Board", "SwVersionBox")).(string)
	return version
}

func (r *registry) NodeType(nodeId int) string {
	r.lookupMutex.RLock()
	defer r.lookupMutex.RUnlock()
	nodeType, ok := r.nodeTypes[nodeId]
	if !ok {
		return "Unknown"
	}
	return nodeType
}

func (r *registry) NodeName(nodeId int) string {
	r.lookupMutex.RLock()
	defer r.lookupMutex.RUnlock()
	name, ok := r.nodeNames[nodeId]
	if !ok {
		return fmt.Sprintf("%d:Unknown", nodeId)
	}
	return name
}
