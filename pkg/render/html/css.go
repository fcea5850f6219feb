package html

// CSS returns the default stylesheet for the component classes emitted by
// the renderer. The engine does not interpret styles; this is served as a
// convenience for consumers that have none of their own.
func CSS() string {
	return defaultCSS
}

const defaultCSS = `.a2ui-surface {
    display: flex;
    flex-direction: column;
    gap: 16px;
}
.a2ui-card {
    background: white;
    border-radius: 16px;
    box-shadow: 0 4px 12px rgba(46, 125, 50, 0.15);
    overflow: hidden;
    transition: transform 0.2s, box-shadow 0.2s;
}
.a2ui-card:hover {
    transform: translateY(-2px);
    box-shadow: 0 6px 16px rgba(46, 125, 50, 0.2);
}
.a2ui-row {
    display: flex;
    flex-direction: row;
    gap: 16px;
    align-items: center;
    padding: 12px;
}
.a2ui-column {
    display: flex;
    flex-direction: column;
    gap: 4px;
}
.a2ui-list {
    display: flex;
    flex-direction: column;
    gap: 12px;
}
.a2ui-image {
    width: 150px;
    height: 120px;
    border-radius: 12px;
    object-fit: cover;
}
.a2ui-title {
    font-weight: 600;
    color: #1b5e20;
    font-size: 16px;
    margin: 0;
}
.a2ui-text {
    color: #757575;
    font-size: 14px;
    margin: 0;
}
.a2ui-heading {
    color: #388e3c;
    font-weight: 600;
    margin: 0;
}
.a2ui-button {
    background: #388e3c;
    color: white;
    border: none;
    padding: 8px 16px;
    border-radius: 20px;
    font-weight: 600;
    cursor: pointer;
    transition: background 0.2s;
}
.a2ui-button:hover {
    background: #1b5e20;
}
.a2ui-divider {
    border: none;
    border-top: 1px solid #e0e0e0;
    margin: 8px 0;
}
`
